package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

var ErrSignatureMismatch = errors.New("signature mismatch")

// GatewayOrder is the gateway-side order a payment session is opened
// against. The ID and Key are handed to the hosted checkout widget.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway wraps the Razorpay client. The key secret is kept here because
// signature verification must never leave the backend.
type Gateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

func NewGateway(keyID, keySecret string) *Gateway {
	return &Gateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
		secret: keySecret,
	}
}

// KeyID is the public key the client embeds in the checkout widget.
func (g *Gateway) KeyID() string {
	return g.keyID
}

// CreateOrder registers an order with the gateway and returns its id.
// Amount is in the smallest currency unit.
func (g *Gateway) CreateOrder(amount int64, currency, receipt string) (GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return GatewayOrder{}, fmt.Errorf("gateway order create: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok || id == "" {
		return GatewayOrder{}, errors.New("gateway order create: missing order id")
	}

	return GatewayOrder{ID: id, Amount: amount, Currency: currency}, nil
}

// VerifySignature checks the signed payload returned by the hosted
// checkout: HMAC-SHA256 over "orderID|paymentID" keyed with the secret,
// hex encoded, compared in constant time.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) error {
	return verifySignature(g.secret, orderID, paymentID, signature)
}

func verifySignature(secret, orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
