package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Marker is a point of interest shown on the TourKita map.
type Marker struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Category    string  `bson:"category,omitempty" json:"category,omitempty"`
	Latitude    float64 `bson:"latitude" json:"latitude"`
	Longitude   float64 `bson:"longitude" json:"longitude"`
	Address     string  `bson:"address,omitempty" json:"address,omitempty"`
	ImageURL    string  `bson:"image_url,omitempty" json:"image_url,omitempty"`

	EntranceFee float64 `bson:"entrance_fee" json:"entrance_fee"`
	OpenTime    string  `bson:"open_time,omitempty" json:"open_time,omitempty"`
	CloseTime   string  `bson:"close_time,omitempty" json:"close_time,omitempty"`
}
