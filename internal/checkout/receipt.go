package checkout

import (
	"context"
	"errors"
	"log"

	"droneshop/internal/models"
)

// ErrReceiptUnavailable means neither the canonical order nor a local
// confirmation triple is available; the caller should direct the user to
// order history rather than fabricate data.
var ErrReceiptUnavailable = errors.New("order details unavailable")

// Receipt is what the success page renders. In the degraded case Order is
// nil and only the confirmation triple is shown; payment confirmation and
// order-detail display fail independently.
type Receipt struct {
	OrderID     string
	PaymentID   string
	TotalAmount int64
	Order       *models.Order
	Degraded    bool
}

// ResolveReceipt fetches the canonical order and falls back to the
// just-confirmed triple when the fetch fails. The payment is known to have
// succeeded at this point, so a fetch failure must not block the success
// experience.
func ResolveReceipt(ctx context.Context, api *Client, orderNumber string, confirmed *Confirmation) (Receipt, error) {
	order, err := api.FetchOrder(ctx, orderNumber)
	if err == nil {
		receipt := Receipt{
			OrderID:     order.OrderNumber,
			TotalAmount: order.TotalAmount,
			Order:       &order,
		}
		receipt.PaymentID = order.RazorpayPaymentID
		if confirmed != nil && receipt.PaymentID == "" {
			receipt.PaymentID = confirmed.PaymentID
		}
		return receipt, nil
	}

	if confirmed != nil {
		log.Printf("[RECEIPT] order fetch failed, degrading to confirmation triple: %v", err)
		return Receipt{
			OrderID:     confirmed.OrderID,
			PaymentID:   confirmed.PaymentID,
			TotalAmount: confirmed.TotalAmount,
			Degraded:    true,
		}, nil
	}

	return Receipt{}, ErrReceiptUnavailable
}
