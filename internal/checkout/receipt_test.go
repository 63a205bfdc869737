package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"droneshop/internal/models"
)

func TestResolveReceiptPrefersCanonicalOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Order{
			OrderNumber:       "ORD-FULL",
			TotalAmount:       30000,
			Currency:          "INR",
			RazorpayPaymentID: "pay_full",
			Status:            models.OrderStatusPaid,
			Items: []models.OrderItem{
				{Name: "Scout Quad X2", Price: 15000, Quantity: 2},
			},
		})
	}))
	defer server.Close()

	api := NewClient(server.URL, &Session{})
	receipt, err := ResolveReceipt(context.Background(), api, "ORD-FULL", nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if receipt.Degraded {
		t.Fatal("receipt should not be degraded when the fetch succeeds")
	}
	if receipt.Order == nil || len(receipt.Order.Items) != 1 {
		t.Fatalf("expected full order projection, got %+v", receipt.Order)
	}
	if receipt.OrderID != "ORD-FULL" || receipt.PaymentID != "pay_full" || receipt.TotalAmount != 30000 {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
}

func TestResolveReceiptDegradesToConfirmationTriple(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	api := NewClient(server.URL, &Session{})
	confirmed := &Confirmation{OrderID: "ORD1", PaymentID: "PAY1", TotalAmount: 5000}

	receipt, err := ResolveReceipt(context.Background(), api, "ORD1", confirmed)
	if err != nil {
		t.Fatalf("degraded resolve must not error: %v", err)
	}
	if !receipt.Degraded {
		t.Fatal("expected degraded receipt")
	}
	if receipt.OrderID != "ORD1" || receipt.PaymentID != "PAY1" || receipt.TotalAmount != 5000 {
		t.Fatalf("degraded receipt must carry the literal triple, got %+v", receipt)
	}
	if receipt.Order != nil {
		t.Fatal("degraded receipt has no order projection")
	}
}

func TestResolveReceiptWithNothingAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	api := NewClient(server.URL, &Session{})
	_, err := ResolveReceipt(context.Background(), api, "ORD-MISSING", nil)
	if !errors.Is(err, ErrReceiptUnavailable) {
		t.Fatalf("expected ErrReceiptUnavailable, got %v", err)
	}
}
