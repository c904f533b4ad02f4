package models

import "time"

// DefaultTopic is used when a client books without stating a subject.
const DefaultTopic = "General Consultation"

// Appointment is a confirmed booking against exactly one slot timestamp.
// DateTime carries a uniqueness constraint in the store; that constraint, not
// the dialogue layer, is the source of truth for "at most one booking per
// slot".
type Appointment struct {
	ID                string    `bson:"id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	Email             string    `bson:"email" json:"email"`
	Topic             string    `bson:"topic" json:"topic"`
	DateTime          string    `bson:"dateTime" json:"dateTime"` // RFC3339, equals a slot ID
	FormattedDate     string    `bson:"formattedDate" json:"formattedDate"`
	FormattedTime     string    `bson:"formattedTime" json:"formattedTime"`
	CancellationToken string    `bson:"cancellationToken" json:"cancellationToken"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}
