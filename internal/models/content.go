package models

import "time"

// Content slugs for the singleton documents in the "content" collection.
const (
	ContentServices = "services"
	ContentPrivacy  = "privacy"
	ContentFAQ      = "faq"
)

// ContentSection is one block of a static content page.
type ContentSection struct {
	Heading string `bson:"heading,omitempty" json:"heading,omitempty"`
	Body    string `bson:"body" json:"body"`
}

// ContentDoc is a singleton static page (services, privacy, faq), keyed by
// slug rather than ObjectID so each slug has exactly one latest document.
type ContentDoc struct {
	Slug      string           `bson:"_id" json:"slug"`
	Title     string           `bson:"title,omitempty" json:"title,omitempty"`
	Sections  []ContentSection `bson:"sections" json:"sections"`
	UpdatedAt time.Time        `bson:"updated_at" json:"updated_at"`
	UpdatedBy string           `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}
