package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func signFor(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAcceptsValidSignature(t *testing.T) {
	secret := "test_secret"
	sig := signFor(secret, "order_123", "pay_456")

	if err := verifySignature(secret, "order_123", "pay_456", sig); err != nil {
		t.Fatalf("expected valid signature to pass, got %v", err)
	}
}

func TestVerifySignatureRejectsTamperedPayload(t *testing.T) {
	secret := "test_secret"
	sig := signFor(secret, "order_123", "pay_456")

	cases := []struct {
		name              string
		orderID, payID    string
		signature, secret string
	}{
		{"wrong order id", "order_999", "pay_456", sig, secret},
		{"wrong payment id", "order_123", "pay_999", sig, secret},
		{"wrong secret", "order_123", "pay_456", sig, "other_secret"},
		{"empty signature", "order_123", "pay_456", "", secret},
	}

	for _, tc := range cases {
		err := verifySignature(tc.secret, tc.orderID, tc.payID, tc.signature)
		if !errors.Is(err, ErrSignatureMismatch) {
			t.Errorf("%s: expected ErrSignatureMismatch, got %v", tc.name, err)
		}
	}
}
