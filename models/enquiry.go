package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enquiry snapshots the property id and title at submission time. There is
// no foreign-key enforcement: if the property is later deleted the
// reference dangles, which the enquiries view tolerates.
type Enquiry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Phone         string             `bson:"phone" json:"phone"`
	Message       string             `bson:"message" json:"message"`
	PropertyID    string             `bson:"propertyId" json:"propertyId"`
	PropertyTitle string             `bson:"propertyTitle" json:"propertyTitle"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
