package checkout

import (
	"strings"
	"testing"

	"droneshop/internal/models"
)

func validInfo() models.CustomerInfo {
	return models.CustomerInfo{
		Name:  "Asha Pilot",
		Email: "asha@example.com",
		Phone: "9876543210",
		Address: models.ShippingAddress{
			Street:     "12 Hangar Road",
			City:       "Mumbai",
			State:      "Maharashtra",
			PostalCode: "400001",
			Country:    "IN",
		},
	}
}

func TestValidateCustomerInfoAcceptsCompleteForm(t *testing.T) {
	if errs := ValidateCustomerInfo(validInfo()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestNormalizePhoneStripsFormatting(t *testing.T) {
	cases := map[string]string{
		"98765-43210":    "9876543210",
		"(987) 654-3210": "9876543210",
		"9876543210":     "9876543210",
		"12345":          "12345",
	}
	for raw, want := range cases {
		if got := NormalizePhone(raw); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestValidatePhoneLength(t *testing.T) {
	info := validInfo()
	info.Phone = "98765-43210"
	if errs := ValidateCustomerInfo(info); len(errs) != 0 {
		t.Fatalf("formatted 10-digit phone should pass, got %v", errs)
	}

	info.Phone = "12345"
	errs := ValidateCustomerInfo(info)
	if msg, ok := errs["phone"]; !ok || !strings.Contains(msg, "10 digits") {
		t.Fatalf("expected 10-digit phone error, got %v", errs)
	}
}

func TestValidatePostalCodeLength(t *testing.T) {
	info := validInfo()
	info.Address.PostalCode = "40001"
	if errs := ValidateCustomerInfo(info); errs["postalCode"] == "" {
		t.Fatal("expected 5-digit postal code to fail")
	}

	info.Address.PostalCode = "400001"
	if errs := ValidateCustomerInfo(info); errs["postalCode"] != "" {
		t.Fatalf("expected 6-digit postal code to pass, got %v", errs)
	}

	info.Address.PostalCode = "4000a1"
	if errs := ValidateCustomerInfo(info); errs["postalCode"] == "" {
		t.Fatal("expected non-numeric postal code to fail")
	}
}

func TestValidateEmailShape(t *testing.T) {
	info := validInfo()
	for _, bad := range []string{"not-an-email", "missing@domain", "two words@example.com", ""} {
		info.Email = bad
		if errs := ValidateCustomerInfo(info); errs["email"] == "" {
			t.Errorf("expected email %q to fail", bad)
		}
	}
}

func TestValidateRequiredFields(t *testing.T) {
	info := validInfo()
	info.Name = "  "
	info.Address.Street = ""
	info.Address.City = ""
	info.Address.State = ""

	errs := ValidateCustomerInfo(info)
	for _, field := range []string{"name", "street", "city", "state"} {
		if errs[field] == "" {
			t.Errorf("expected error for %s", field)
		}
	}
}

func TestClearDropsOnlyTheEditedField(t *testing.T) {
	info := models.CustomerInfo{}
	errs := ValidateCustomerInfo(info)
	if len(errs) == 0 {
		t.Fatal("expected errors for empty form")
	}

	before := len(errs)
	errs.Clear("email")
	if _, ok := errs["email"]; ok {
		t.Fatal("email error should be cleared")
	}
	if len(errs) != before-1 {
		t.Fatalf("only the email error should be dropped, had %d now %d", before, len(errs))
	}
}
