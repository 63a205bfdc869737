package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type stubWidget struct {
	payload SignedPayload
	err     error
	opened  atomic.Int32
	release chan struct{} // when set, Open blocks until closed
}

func (w *stubWidget) Open(ctx context.Context, session PaymentSession) (SignedPayload, error) {
	w.opened.Add(1)
	if w.release != nil {
		<-w.release
	}
	if w.err != nil {
		return SignedPayload{}, w.err
	}
	return w.payload, nil
}

type storeStub struct {
	createCalls  atomic.Int32
	verifyCalls  atomic.Int32
	lastTotal    atomic.Int64
	verifyError  string // when non-empty, verify returns success:false
	confirmation Confirmation
}

func (s *storeStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/create", func(w http.ResponseWriter, r *http.Request) {
		s.createCalls.Add(1)
		var req struct {
			TotalAmount int64 `json:"totalAmount"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		s.lastTotal.Store(req.TotalAmount)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"order": map[string]interface{}{
				"id":              "64f000000000000000000001",
				"orderId":         "ORD-TEST1",
				"razorpayOrderId": "order_stub_1",
				"amount":          req.TotalAmount,
				"currency":        "INR",
			},
			"razorpayKey": "rzp_test_key",
		})
	})
	mux.HandleFunc("/orders/verify", func(w http.ResponseWriter, r *http.Request) {
		s.verifyCalls.Add(1)
		if s.verifyError != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   s.verifyError,
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"order": map[string]interface{}{
				"orderId":     s.confirmation.OrderID,
				"paymentId":   s.confirmation.PaymentID,
				"totalAmount": s.confirmation.TotalAmount,
			},
		})
	})
	return mux
}

func newTestFlow(t *testing.T, store *storeStub, widget Widget) *Flow {
	t.Helper()
	server := httptest.NewServer(store.handler())
	t.Cleanup(server.Close)
	return NewFlow(NewClient(server.URL, &Session{}), widget)
}

func testIntent() OrderIntent {
	return OrderIntent{
		ProductID: "64f000000000000000000099",
		Quantity:  2,
		UnitPrice: 15000,
		Customer:  validInfo(),
	}
}

func TestSubmitReturnsBackendTripleVerbatim(t *testing.T) {
	store := &storeStub{confirmation: Confirmation{OrderID: "ORD-TEST1", PaymentID: "pay_9", TotalAmount: 30000}}
	widget := &stubWidget{payload: SignedPayload{
		GatewayOrderID:   "order_stub_1",
		GatewayPaymentID: "pay_9",
		Signature:        "sig",
	}}
	flow := newTestFlow(t, store, widget)

	got, err := flow.Submit(context.Background(), testIntent())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got != store.confirmation {
		t.Fatalf("confirmation = %+v, want backend triple %+v", got, store.confirmation)
	}
	if flow.State() != StateSucceeded {
		t.Fatalf("state = %s, want succeeded", flow.State())
	}
}

func TestSubmitSendsComputedTotal(t *testing.T) {
	store := &storeStub{confirmation: Confirmation{OrderID: "ORD-TEST1", PaymentID: "pay_9", TotalAmount: 30000}}
	widget := &stubWidget{payload: SignedPayload{GatewayOrderID: "order_stub_1", GatewayPaymentID: "pay_9", Signature: "sig"}}
	flow := newTestFlow(t, store, widget)

	if _, err := flow.Submit(context.Background(), testIntent()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if got := store.lastTotal.Load(); got != 30000 {
		t.Fatalf("totalAmount sent = %d, want 30000 for quantity 2 at 15000", got)
	}
}

func TestSubmitBlocksOnValidationWithoutNetworkCall(t *testing.T) {
	store := &storeStub{}
	widget := &stubWidget{}
	flow := newTestFlow(t, store, widget)

	intent := testIntent()
	intent.Customer.Phone = "12345"

	_, err := flow.Submit(context.Background(), intent)

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) || fieldErrs["phone"] == "" {
		t.Fatalf("expected phone field error, got %v", err)
	}
	if store.createCalls.Load() != 0 {
		t.Fatal("validation failure must not reach the network")
	}
	if widget.opened.Load() != 0 {
		t.Fatal("widget must not open for an invalid form")
	}
	if flow.State() != StateIdle {
		t.Fatalf("state = %s, want idle", flow.State())
	}
}

func TestVerificationFailureSurfacesBackendError(t *testing.T) {
	store := &storeStub{verifyError: "signature mismatch"}
	widget := &stubWidget{payload: SignedPayload{GatewayOrderID: "order_stub_1", GatewayPaymentID: "pay_9", Signature: "bad"}}
	flow := newTestFlow(t, store, widget)

	_, err := flow.Submit(context.Background(), testIntent())

	var verifyErr *VerificationError
	if !errors.As(err, &verifyErr) {
		t.Fatalf("expected VerificationError, got %v", err)
	}
	if !strings.Contains(verifyErr.Error(), "signature mismatch") {
		t.Fatalf("error should carry the backend message, got %q", verifyErr.Error())
	}
	if flow.State() != StateVerificationFailed {
		t.Fatalf("state = %s, want verification-failed", flow.State())
	}
}

func TestVerificationFailureAllowsExplicitResubmit(t *testing.T) {
	store := &storeStub{verifyError: "signature mismatch"}
	widget := &stubWidget{payload: SignedPayload{GatewayOrderID: "order_stub_1", GatewayPaymentID: "pay_9", Signature: "sig"}}
	flow := newTestFlow(t, store, widget)

	if _, err := flow.Submit(context.Background(), testIntent()); err == nil {
		t.Fatal("first submit should fail verification")
	}
	if store.verifyCalls.Load() != 1 {
		t.Fatalf("no automatic retry: verify called %d times", store.verifyCalls.Load())
	}

	store.verifyError = ""
	store.confirmation = Confirmation{OrderID: "ORD-TEST1", PaymentID: "pay_9", TotalAmount: 30000}

	got, err := flow.Submit(context.Background(), testIntent())
	if err != nil {
		t.Fatalf("resubmit after verification failure should work: %v", err)
	}
	if got.PaymentID != "pay_9" {
		t.Fatalf("unexpected confirmation %+v", got)
	}
}

func TestDismissalResetsFlowForFreshSubmission(t *testing.T) {
	store := &storeStub{}
	widget := &stubWidget{err: ErrDismissed}
	flow := newTestFlow(t, store, widget)

	_, err := flow.Submit(context.Background(), testIntent())
	if !errors.Is(err, ErrDismissed) {
		t.Fatalf("expected ErrDismissed, got %v", err)
	}
	if flow.State() != StateIdle {
		t.Fatalf("state after dismissal = %s, want idle", flow.State())
	}
	if store.verifyCalls.Load() != 0 {
		t.Fatal("dismissal must not trigger verification")
	}

	widget.err = nil
	widget.payload = SignedPayload{GatewayOrderID: "order_stub_1", GatewayPaymentID: "pay_2", Signature: "sig"}
	store.confirmation = Confirmation{OrderID: "ORD-TEST1", PaymentID: "pay_2", TotalAmount: 30000}

	if _, err := flow.Submit(context.Background(), testIntent()); err != nil {
		t.Fatalf("fresh submission after dismissal failed: %v", err)
	}
}

func TestWidgetNotReadyBlocksSubmission(t *testing.T) {
	store := &storeStub{}
	widget := &stubWidget{err: ErrWidgetNotReady}
	flow := newTestFlow(t, store, widget)

	_, err := flow.Submit(context.Background(), testIntent())
	if !errors.Is(err, ErrWidgetNotReady) {
		t.Fatalf("expected ErrWidgetNotReady, got %v", err)
	}
	if flow.State() != StateIdle {
		t.Fatalf("state = %s, want idle", flow.State())
	}
}

func TestSecondSubmitWhileInFlightIsRejected(t *testing.T) {
	store := &storeStub{confirmation: Confirmation{OrderID: "ORD-TEST1", PaymentID: "pay_9", TotalAmount: 30000}}
	widget := &stubWidget{
		payload: SignedPayload{GatewayOrderID: "order_stub_1", GatewayPaymentID: "pay_9", Signature: "sig"},
		release: make(chan struct{}),
	}
	flow := newTestFlow(t, store, widget)

	done := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), testIntent())
		done <- err
	}()

	// Wait until the first attempt is parked inside the widget.
	for widget.opened.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	if _, err := flow.Submit(context.Background(), testIntent()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(widget.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if store.createCalls.Load() != 1 {
		t.Fatalf("expected exactly one order creation, got %d", store.createCalls.Load())
	}
}
