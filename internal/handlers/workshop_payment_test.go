package handlers

import (
	"strings"
	"testing"
)

func TestDateOffered(t *testing.T) {
	dates := []string{"2026-10-03", "2026-10-17"}

	if !dateOffered(dates, "2026-10-17") {
		t.Fatal("offered date should match")
	}
	if dateOffered(dates, "2026-10-10") {
		t.Fatal("unoffered date should not match")
	}
	if dateOffered(nil, "2026-10-03") {
		t.Fatal("no dates means nothing is offered")
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	number := newOrderNumber("ORD")

	if !strings.HasPrefix(number, "ORD-") {
		t.Fatalf("expected ORD- prefix, got %s", number)
	}
	if len(number) != len("ORD-")+10 {
		t.Fatalf("expected 10-char suffix, got %s", number)
	}
	if number == newOrderNumber("ORD") {
		t.Fatal("order numbers should not collide")
	}
}
