package models

// Slot represents a single bookable half-hour window. The slot's ID is its
// own RFC3339 timestamp, which doubles as the lookup key and the uniqueness
// anchor for conflict checks.
type Slot struct {
	ID            string `bson:"id" json:"id"`
	Date          string `bson:"date" json:"date"` // same RFC3339 instant as ID
	FormattedDate string `bson:"formattedDate" json:"formattedDate"`
	FormattedTime string `bson:"formattedTime" json:"formattedTime"`
	Available     bool   `bson:"available" json:"available"`
}
