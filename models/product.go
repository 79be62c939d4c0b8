package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a listed event. Historical naming: the original data model
// called events "products" and the API paths keep that vocabulary.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	OrganizerName string             `bson:"organizerName" json:"organizerName"`
	Description   *string            `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"` // 0 denotes a free event
	Category      string             `bson:"category" json:"category"`
	Date          *string            `bson:"date" json:"date"`
	Time          *string            `bson:"time" json:"time"`
	Venue         *string            `bson:"venue" json:"venue"`
	Location      *string            `bson:"location" json:"location"` // free text or "lat,lng"
	EventImage    *string            `bson:"eventImage" json:"eventImage"`
	EventFile     *string            `bson:"eventFile" json:"eventFile"`
	ProfileImage  *string            `bson:"profileImage" json:"profileImage"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MaxTitleLen bounds title and organizerName, as the original schema did.
const MaxTitleLen = 100
