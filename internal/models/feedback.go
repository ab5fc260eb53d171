package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackType discriminates what a feedback entry rates: a map location
// or an app feature.
type FeedbackType string

const (
	LocationFeedback FeedbackType = "LocationFeedback"
	AppFeedback      FeedbackType = "AppFeedback"
)

// Feedback is one user-submitted rating event. Rating and CreatedAt are
// pointers because historical documents are missing them; a nil Rating is
// never averaged and a nil CreatedAt excludes the record from time-bucketed
// views (it still counts in unfiltered totals).
type Feedback struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FeedbackType FeedbackType       `bson:"feedback_type" json:"feedback_type"`

	// The rated entity name lives in one of two fields depending on type.
	Location string `bson:"location,omitempty" json:"location,omitempty"`
	Feature  string `bson:"feature,omitempty" json:"feature,omitempty"`

	Rating   *int   `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment  string `bson:"comment,omitempty" json:"comment,omitempty"`
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`

	CreatedAt *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// Subject returns whichever of location/feature is present.
func (f Feedback) Subject() string {
	if f.Location != "" {
		return f.Location
	}
	return f.Feature
}
