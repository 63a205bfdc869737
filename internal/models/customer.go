package models

// ShippingAddress is the single-country delivery address captured at
// checkout. PostalCode is validated to exactly six digits before an order
// is accepted.
type ShippingAddress struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// CustomerInfo is the buyer contact block embedded in orders and workshop
// registrations. It is a snapshot taken at order time, independent of any
// user account.
type CustomerInfo struct {
	Name    string          `bson:"name" json:"name"`
	Email   string          `bson:"email" json:"email"`
	Phone   string          `bson:"phone" json:"phone"`
	Address ShippingAddress `bson:"address" json:"address"`
}
