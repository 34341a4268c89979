package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileDescriptor is the only artifact retained for an uploaded file once
// ownership has moved to the blob store. The first descriptor in a
// property's Files slice is the primary image.
type FileDescriptor struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"`
	Name string `bson:"name" json:"name"`
}

type Agent struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Company string `bson:"company" json:"company"`
	Photo   string `bson:"photo" json:"photo"`
}

type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	Country     string             `bson:"country" json:"country"`
	ZipCode     string             `bson:"zipCode" json:"zipCode"`
	Type        string             `bson:"type" json:"type"`
	Purpose     string             `bson:"purpose" json:"purpose"`
	Price       float64            `bson:"price" json:"price"`
	Bedrooms    int                `bson:"bedrooms" json:"bedrooms"`
	Parking     int                `bson:"parking" json:"parking"`
	Area        float64            `bson:"area" json:"area"`
	CarpetArea  float64            `bson:"carpetarea" json:"carpetarea"`
	PlotSize    float64            `bson:"plotsize" json:"plotsize"`
	Facing      string             `bson:"facing" json:"facing"`
	Amenities   []string           `bson:"amenities" json:"amenities"`
	Files       []FileDescriptor   `bson:"files" json:"files"`
	VideoURL    string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Agent       Agent              `bson:"agent" json:"agent"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
