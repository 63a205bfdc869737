package checkout

import (
	"context"
	"errors"
)

// ErrDismissed is returned by a widget when the user closes the hosted
// checkout without paying. No order cancellation is issued for it.
var ErrDismissed = errors.New("payment widget dismissed")

// ErrWidgetNotReady is returned when the gateway script failed to load.
// The flow cannot route around this dependency; the attempt is abandoned.
var ErrWidgetNotReady = errors.New("payment widget not loaded")

// PaymentSession is the server-issued token set used to open the hosted
// checkout, plus contact prefill.
type PaymentSession struct {
	GatewayOrderID string
	Key            string
	Amount         int64
	Currency       string
	Name           string
	Email          string
	Phone          string
}

// SignedPayload is the gateway's callback data. It is opaque to the
// client: only the backend can verify the signature, and the mere arrival
// of this payload is not proof of payment.
type SignedPayload struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	Signature        string `json:"razorpay_signature"`
}

// Widget is the single boundary to the externally hosted payment UI. Open
// blocks until the widget settles and returns either the signed payload or
// ErrDismissed; the host cannot preempt it once opened.
type Widget interface {
	Open(ctx context.Context, session PaymentSession) (SignedPayload, error)
}
