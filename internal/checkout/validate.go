package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"droneshop/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigits = regexp.MustCompile(`\D`)

// FieldErrors maps form field names to their validation message. An empty
// map means the form may be submitted.
type FieldErrors map[string]string

// Clear drops the error for a single field. Called on every keystroke for
// the edited field so corrections are reflected immediately rather than on
// the next submit.
func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "valid"
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", "))
}

// NormalizePhone strips every non-digit character, so inputs like
// "98765-43210" and "(987) 654-3210" validate as ten digits.
func NormalizePhone(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// ValidateCustomerInfo applies every checkout form rule and returns the
// per-field messages. All rules must pass before any network call is made.
func ValidateCustomerInfo(info models.CustomerInfo) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(info.Name) == "" {
		errs["name"] = "name is required"
	}

	if strings.TrimSpace(info.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(strings.TrimSpace(info.Email)) {
		errs["email"] = "enter a valid email"
	}

	if phone := NormalizePhone(info.Phone); len(phone) != 10 {
		errs["phone"] = "phone must be 10 digits"
	}

	if strings.TrimSpace(info.Address.Street) == "" {
		errs["street"] = "street is required"
	}
	if strings.TrimSpace(info.Address.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(info.Address.State) == "" {
		errs["state"] = "state is required"
	}

	postal := strings.TrimSpace(info.Address.PostalCode)
	if len(postal) != 6 || nonDigits.MatchString(postal) {
		errs["postalCode"] = "postal code must be 6 digits"
	}

	return errs
}
