package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a scheduled happening at (or near) a marker.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	LocationName string    `bson:"location_name,omitempty" json:"location_name,omitempty"`
	Latitude     float64   `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    float64   `bson:"longitude,omitempty" json:"longitude,omitempty"`
	ImageURL     string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	StartDate    time.Time `bson:"start_date" json:"start_date"`
	EndDate      time.Time `bson:"end_date" json:"end_date"`
}
