package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestBearerClaimsRoundTrip(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"userId": "64f000000000000000000001",
		"role":   "customer",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	claims, err := bearerClaims("Bearer "+token, testSecret)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims["role"] != "customer" {
		t.Fatalf("unexpected claims %v", claims)
	}
}

func TestBearerClaimsRejectsBadHeaders(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"userId": "x", "exp": time.Now().Add(time.Hour).Unix()})

	cases := map[string]string{
		"empty":        "",
		"no scheme":    token,
		"wrong scheme": "Basic " + token,
		"garbage":      "Bearer not.a.token",
	}
	for name, header := range cases {
		if _, err := bearerClaims(header, testSecret); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestBearerClaimsRejectsWrongSecret(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"userId": "x", "exp": time.Now().Add(time.Hour).Unix()})
	if _, err := bearerClaims("Bearer "+token, "other-secret"); err == nil {
		t.Fatal("expected signature error")
	}
}
