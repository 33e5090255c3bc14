package model

import "strings"

// EventRef links a Band to one of its events before any detail is known.
type EventRef struct {
	ID int64 `json:"id"`
}

// EventDetail holds the fields extracted from an event page.
//
// Every field is optional. A nil field means the extraction found nothing,
// or found only whitespace; fields are never set to an empty string.
// Use Text to build values so this holds.
//
// Example:
//
//	detail := &EventDetail{
//	    Title: model.Text("Warped Tour"),
//	    Venue: model.Text("  "), // nil
//	}
type EventDetail struct {
	Title   *string `json:"title,omitempty"`
	Date    *string `json:"date,omitempty"`
	Venue   *string `json:"venue,omitempty"`
	Address *string `json:"address,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// IsEmpty returns true if no field is set.
func (d *EventDetail) IsEmpty() bool {
	return d == nil ||
		(d.Title == nil && d.Date == nil && d.Venue == nil && d.Address == nil && d.Status == nil)
}

// Text returns a pointer to the trimmed string, or nil if it is blank.
func Text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional field, returning fallback when it is absent.
func Value(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// Event is an event of a band together with its details, if any were found.
type Event struct {
	ID      int64        `json:"id"`
	Details *EventDetail `json:"details,omitempty"`
}
