package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered TourKita app user.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Email         string `bson:"email" json:"email"`
	Name          string `bson:"name" json:"name"`
	Age           int    `bson:"age,omitempty" json:"age,omitempty"`
	Gender        string `bson:"gender,omitempty" json:"gender,omitempty"`
	ContactNumber string `bson:"contact_number,omitempty" json:"contact_number,omitempty"`

	// UserType is "registered" or "guest"; Status is the verification state.
	UserType string `bson:"user_type" json:"user_type"`
	Status   string `bson:"status,omitempty" json:"status,omitempty"`
	IsActive bool   `bson:"is_active" json:"is_active"`
	Archived bool   `bson:"archived" json:"archived"`
}

// Guest is an anonymous app session tracked for usage counts only.
type Guest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DeviceID     string             `bson:"device_id" json:"device_id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	LastActiveAt time.Time          `bson:"last_active_at" json:"last_active_at"`
}
