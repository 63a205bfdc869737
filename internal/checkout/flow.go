package checkout

import (
	"context"
	"errors"
	"sync"

	"droneshop/internal/models"
)

// State is the single enumerated checkout state, replacing the impossible
// combinations that separate loading/modal booleans allow.
type State int

const (
	StateIdle State = iota
	StateOrderCreating
	StatePaymentPending
	StatePaymentVerifying
	StateSucceeded
	StateVerificationFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOrderCreating:
		return "order-creating"
	case StatePaymentPending:
		return "payment-pending"
	case StatePaymentVerifying:
		return "payment-verifying"
	case StateSucceeded:
		return "succeeded"
	case StateVerificationFailed:
		return "verification-failed"
	default:
		return "unknown"
	}
}

// ErrSubmitInFlight is returned when Submit is called while a previous
// attempt has not settled. This is the flow's only concurrency control.
var ErrSubmitInFlight = errors.New("a payment attempt is already in progress")

// OrderIntent is the client-side draft of a purchase. It exists only until
// the backend responds with a server-side order.
type OrderIntent struct {
	ProductID string
	Quantity  int
	UnitPrice int64
	Customer  models.CustomerInfo
}

// TotalAmount is the client-computed total sent with order creation. The
// backend recomputes and enforces it.
func (i OrderIntent) TotalAmount() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// WorkshopIntent is the registration variant of an order intent, keyed by
// workshop and date instead of product and quantity.
type WorkshopIntent struct {
	WorkshopID   string
	SelectedDate string
	Participant  models.CustomerInfo
}

// Flow drives one checkout attempt end to end. Dismissal resets it to
// Idle so a fresh submission works without reloading; verification failure
// parks it in VerificationFailed, from which only an explicit resubmit
// continues.
type Flow struct {
	api    *Client
	widget Widget

	mu       sync.Mutex
	state    State
	inFlight bool
}

func NewFlow(api *Client, widget Widget) *Flow {
	return &Flow{api: api, widget: widget, state: StateIdle}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Flow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight {
		return ErrSubmitInFlight
	}
	f.inFlight = true
	return nil
}

func (f *Flow) settle() {
	f.mu.Lock()
	f.inFlight = false
	f.mu.Unlock()
}

// Submit runs the full product checkout: validate, create the order, open
// the payment widget, verify the signed payload. The returned Confirmation
// is exactly the backend's {orderId, paymentId, totalAmount} triple.
func (f *Flow) Submit(ctx context.Context, intent OrderIntent) (Confirmation, error) {
	create := func(ctx context.Context) (OrderSession, error) {
		items := []OrderLine{{ProductID: intent.ProductID, Quantity: intent.Quantity}}
		return f.api.CreateOrder(ctx, items, intent.Customer, intent.TotalAmount())
	}
	verify := f.api.VerifyPayment
	return f.run(ctx, intent.Customer, create, verify)
}

// SubmitWorkshop runs the workshop registration variant of the flow.
func (f *Flow) SubmitWorkshop(ctx context.Context, intent WorkshopIntent) (Confirmation, error) {
	create := func(ctx context.Context) (OrderSession, error) {
		return f.api.CreateWorkshopPayment(ctx, intent.WorkshopID, intent.SelectedDate, intent.Participant)
	}
	verify := f.api.VerifyWorkshopPayment
	return f.run(ctx, intent.Participant, create, verify)
}

func (f *Flow) run(
	ctx context.Context,
	customer models.CustomerInfo,
	create func(context.Context) (OrderSession, error),
	verify func(context.Context, SignedPayload, string) (Confirmation, error),
) (Confirmation, error) {
	if err := f.begin(); err != nil {
		return Confirmation{}, err
	}
	defer f.settle()

	// Validation never reaches the network.
	if errs := ValidateCustomerInfo(customer); len(errs) > 0 {
		f.setState(StateIdle)
		return Confirmation{}, errs
	}

	f.setState(StateOrderCreating)
	session, err := create(ctx)
	if err != nil {
		// No partial order is assumed created; the form may be resubmitted.
		f.setState(StateIdle)
		return Confirmation{}, err
	}

	f.setState(StatePaymentPending)
	payload, err := f.widget.Open(ctx, PaymentSession{
		GatewayOrderID: session.Order.GatewayOrderID,
		Key:            session.Key,
		Amount:         session.Order.Amount,
		Currency:       session.Order.Currency,
		Name:           customer.Name,
		Email:          customer.Email,
		Phone:          customer.Phone,
	})
	if err != nil {
		f.setState(StateIdle)
		return Confirmation{}, err
	}

	f.setState(StatePaymentVerifying)
	confirmation, err := verify(ctx, payload, session.Order.ID)
	if err != nil {
		f.setState(StateVerificationFailed)
		return Confirmation{}, err
	}

	f.setState(StateSucceeded)
	return confirmation, nil
}
