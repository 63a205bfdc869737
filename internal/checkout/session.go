// Package checkout implements the client side of the purchase flow: form
// validation, order creation against the store API, bridging to the hosted
// payment widget, payment verification, and receipt resolution.
//
// The flow is an explicit state machine
//
//	Idle -> OrderCreating -> PaymentPending -> PaymentVerifying
//	     -> Succeeded | VerificationFailed
//
// with a single in-flight guard instead of scattered boolean flags. A
// dismissed widget returns the flow to Idle; a failed verification leaves
// it recoverable so the user can resubmit, never retried automatically.
package checkout

import (
	"strings"

	"droneshop/internal/models"
)

// Session carries the signed-in user's token and profile. It replaces ad
// hoc browser-storage reads with one injected object: the API client uses
// Token for bearer auth, and Prefill seeds the checkout form.
type Session struct {
	Token string
	Name  string
	Email string
	Phone string
}

// Authenticated reports whether the session can call the auth-guarded
// workshop payment endpoints.
func (s *Session) Authenticated() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// Prefill copies profile fields into empty slots of a customer form.
// Fields the user already typed are left alone.
func (s *Session) Prefill(info *models.CustomerInfo) {
	if s == nil || info == nil {
		return
	}
	if info.Name == "" {
		info.Name = s.Name
	}
	if info.Email == "" {
		info.Email = s.Email
	}
	if info.Phone == "" {
		info.Phone = s.Phone
	}
}
