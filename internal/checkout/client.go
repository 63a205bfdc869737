package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"droneshop/internal/models"
)

// Client is a thin JSON client for the store API. The zero in-flight and
// retry policy lives in Flow; Client just issues single requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

func NewClient(baseURL string, session *Session) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
	}
}

// OrderLine is one purchased product reference. Prices are never sent per
// line; the backend snapshots them from the catalog.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreatedOrder is the backend's order-creation projection: the internal
// id, the human-facing order number, and the gateway order the payment
// session will be opened against.
type CreatedOrder struct {
	ID             string `json:"id"`
	OrderNumber    string `json:"orderId"`
	GatewayOrderID string `json:"razorpayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// OrderSession pairs a created order with the gateway public key needed to
// open the hosted checkout.
type OrderSession struct {
	Order CreatedOrder
	Key   string
}

// Confirmation is the exact triple returned by payment verification. The
// flow passes it through untouched; values are never recomputed locally.
type Confirmation struct {
	OrderID     string `json:"orderId"`
	PaymentID   string `json:"paymentId"`
	TotalAmount int64  `json:"totalAmount"`
}

// VerificationError is a backend-reported verification failure. This is
// the highest-severity error in the flow: the user may have been charged
// without a confirmed order, so the message recommends contacting support.
type VerificationError struct {
	Message string
}

func (e *VerificationError) Error() string {
	return "payment verification failed: " + e.Message
}

type createOrderRequest struct {
	Items        []OrderLine         `json:"items"`
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
	TotalAmount  int64               `json:"totalAmount"`
}

type createOrderResponse struct {
	Success     bool         `json:"success"`
	Error       string       `json:"error"`
	Order       CreatedOrder `json:"order"`
	RazorpayKey string       `json:"razorpayKey"`
}

type verifyRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	Signature        string `json:"razorpay_signature"`
	OrderID          string `json:"order_id"`
}

type verifyResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Order   Confirmation `json:"order"`
}

// CreateOrder submits a validated order intent and returns the payment
// session. A failure means no order should be assumed created; the caller
// may resubmit.
func (c *Client) CreateOrder(ctx context.Context, items []OrderLine, info models.CustomerInfo, totalAmount int64) (OrderSession, error) {
	body := createOrderRequest{Items: items, CustomerInfo: info, TotalAmount: totalAmount}

	var resp createOrderResponse
	if err := c.postJSON(ctx, "/orders/create", body, &resp); err != nil {
		return OrderSession{}, err
	}
	if !resp.Success {
		return OrderSession{}, fmt.Errorf("order creation failed: %s", resp.Error)
	}
	return OrderSession{Order: resp.Order, Key: resp.RazorpayKey}, nil
}

// VerifyPayment forwards the signed payload verbatim to the backend, the
// sole source of truth for payment success.
func (c *Client) VerifyPayment(ctx context.Context, payload SignedPayload, orderID string) (Confirmation, error) {
	body := verifyRequest{
		GatewayOrderID:   payload.GatewayOrderID,
		GatewayPaymentID: payload.GatewayPaymentID,
		Signature:        payload.Signature,
		OrderID:          orderID,
	}

	var resp verifyResponse
	if err := c.postJSON(ctx, "/orders/verify", body, &resp); err != nil {
		return Confirmation{}, err
	}
	if !resp.Success {
		return Confirmation{}, &VerificationError{Message: resp.Error}
	}
	return resp.Order, nil
}

// FetchOrder loads the canonical order projection for the receipt page.
func (c *Client) FetchOrder(ctx context.Context, orderNumber string) (models.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/orders/"+url.PathEscape(orderNumber), nil)
	if err != nil {
		return models.Order{}, err
	}
	c.authorize(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return models.Order{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return models.Order{}, fmt.Errorf("fetch order %s: status %d", orderNumber, res.StatusCode)
	}

	var order models.Order
	if err := json.NewDecoder(res.Body).Decode(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

type workshopPaymentRequest struct {
	WorkshopID      string              `json:"workshopId"`
	SelectedDate    string              `json:"selectedDate"`
	ParticipantInfo models.CustomerInfo `json:"participantInfo"`
}

// CreateWorkshopPayment mirrors CreateOrder for workshop registrations,
// keyed by workshop and date instead of product and quantity. The endpoint
// is auth-guarded, so the session token must be present.
func (c *Client) CreateWorkshopPayment(ctx context.Context, workshopID, selectedDate string, participant models.CustomerInfo) (OrderSession, error) {
	if !c.session.Authenticated() {
		return OrderSession{}, fmt.Errorf("workshop registration requires sign-in")
	}

	body := workshopPaymentRequest{
		WorkshopID:      workshopID,
		SelectedDate:    selectedDate,
		ParticipantInfo: participant,
	}

	var resp createOrderResponse
	if err := c.postJSON(ctx, "/workshops/payment/create", body, &resp); err != nil {
		return OrderSession{}, err
	}
	if !resp.Success {
		return OrderSession{}, fmt.Errorf("registration failed: %s", resp.Error)
	}
	return OrderSession{Order: resp.Order, Key: resp.RazorpayKey}, nil
}

// VerifyWorkshopPayment mirrors VerifyPayment for registrations.
func (c *Client) VerifyWorkshopPayment(ctx context.Context, payload SignedPayload, registrationID string) (Confirmation, error) {
	body := verifyRequest{
		GatewayOrderID:   payload.GatewayOrderID,
		GatewayPaymentID: payload.GatewayPaymentID,
		Signature:        payload.Signature,
		OrderID:          registrationID,
	}

	var resp verifyResponse
	if err := c.postJSON(ctx, "/workshops/payment/verify", body, &resp); err != nil {
		return Confirmation{}, err
	}
	if !resp.Success {
		return Confirmation{}, &VerificationError{Message: resp.Error}
	}
	return resp.Order, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// Error envelopes still decode into out; success flags drive handling.
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) authorize(req *http.Request) {
	if c.session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
}
