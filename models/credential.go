package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credential is a registered user. A pending registration never touches
// this collection: it lives inside the signed verification token until the
// link is visited.
type Credential struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"` // bcrypt hash
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
	Bio            string             `bson:"bio" json:"bio"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
