package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Workshop struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       int64              `bson:"price" json:"price"`
	Dates       []string           `bson:"dates" json:"dates"` // ISO dates offered
	Seats       int                `bson:"seats" json:"seats"` // seats per date
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// WorkshopRegistration records a paid (or pending) seat for one date of a
// workshop. Payment fields mirror Order.
type WorkshopRegistration struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RegistrationNo    string             `bson:"registrationNo" json:"orderId"`
	WorkshopID        primitive.ObjectID `bson:"workshopId" json:"workshopId"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	SelectedDate      string             `bson:"selectedDate" json:"selectedDate"`
	Participant       CustomerInfo       `bson:"participant" json:"participant"`
	TotalAmount       int64              `bson:"totalAmount" json:"totalAmount"`
	Currency          string             `bson:"currency" json:"currency"`
	RazorpayOrderID   string             `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string             `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	PaidAt            *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}
