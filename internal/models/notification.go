package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an announcement pushed to app users.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title    string `bson:"title" json:"title"`
	Message  string `bson:"message" json:"message"`
	Audience string `bson:"audience" json:"audience"` // all, registered, guests

	DeliveredAt *time.Time `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
}

// AdminMessage is an admin's reply to a feedback entry, kept for the audit
// trail alongside the optional email to the submitter.
type AdminMessage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	FeedbackID primitive.ObjectID `bson:"feedback_id" json:"feedback_id"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Subject    string             `bson:"subject" json:"subject"`
	Body       string             `bson:"body" json:"body"`
	AdminID    string             `bson:"admin_id" json:"admin_id"`
	EmailSent  bool               `bson:"email_sent" json:"email_sent"`
}
