package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order payment status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusCancelled = "cancelled"
)

// Delivery status values, advanced by the admin back-office only.
const (
	DeliveryProcessing = "processing"
	DeliveryShipped    = "shipped"
	DeliveryDelivered  = "delivered"
	DeliveryCancelled  = "cancelled"
)

// OrderItem is a denormalized product snapshot captured at order time, so
// later product edits do not rewrite history.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     int64              `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Order is the persisted order document. OrderNumber is the human-facing
// identifier; RazorpayOrderID/RazorpayPaymentID tie it to the gateway.
type Order struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderNumber       string              `bson:"orderNumber" json:"orderId"`
	UserID            *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Items             []OrderItem         `bson:"items" json:"items"`
	Customer          CustomerInfo        `bson:"customer" json:"customer"`
	TotalAmount       int64               `bson:"totalAmount" json:"totalAmount"`
	Currency          string              `bson:"currency" json:"currency"`
	RazorpayOrderID   string              `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string              `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	Status            string              `bson:"status" json:"status"`
	DeliveryStatus    string              `bson:"deliveryStatus" json:"deliveryStatus"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	PaidAt            *time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}
