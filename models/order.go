package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order confirmation lifecycle. An order is persisted before the
// confirmation email is attempted and then transitions to Confirmed or
// ConfirmationFailed; a failed confirmation can be retried.
const (
	OrderPending            = "pending"
	OrderConfirmed          = "confirmed"
	OrderConfirmationFailed = "confirmation_failed"
)

// Address is the contact address captured at checkout.
type Address struct {
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Country string `bson:"country" json:"country"`
	Zipcode string `bson:"zipcode" json:"zipcode"`
}

// Order is an RSVP confirmation tied to one or more products. TotalPrice is
// client-supplied and stored verbatim, never recomputed server-side.
type Order struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name       string               `bson:"name" json:"name" binding:"required"`
	Email      string               `bson:"email" json:"email" binding:"required,email"`
	Phone      string               `bson:"phone" json:"phone"`
	Address    Address              `bson:"address" json:"address"`
	ProductIDs []primitive.ObjectID `bson:"productIds" json:"productIds" binding:"required,min=1"`
	TotalPrice float64              `bson:"totalPrice" json:"totalPrice"`
	Status     string               `bson:"status" json:"status"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
}
