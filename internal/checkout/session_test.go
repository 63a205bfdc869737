package checkout

import (
	"testing"

	"droneshop/internal/models"
)

func TestPrefillFillsOnlyEmptyFields(t *testing.T) {
	session := &Session{Token: "tok", Name: "Asha Pilot", Email: "asha@example.com", Phone: "9876543210"}

	info := models.CustomerInfo{Email: "other@example.com"}
	session.Prefill(&info)

	if info.Name != "Asha Pilot" || info.Phone != "9876543210" {
		t.Fatalf("empty fields should be prefilled, got %+v", info)
	}
	if info.Email != "other@example.com" {
		t.Fatal("typed fields must not be overwritten")
	}
}

func TestAuthenticated(t *testing.T) {
	if (&Session{}).Authenticated() {
		t.Fatal("empty session is not authenticated")
	}
	if (*Session)(nil).Authenticated() {
		t.Fatal("nil session is not authenticated")
	}
	if !(&Session{Token: "tok"}).Authenticated() {
		t.Fatal("session with token is authenticated")
	}
}
