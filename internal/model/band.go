package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Band is a page liked by the profile being crawled.
//
// Bands are produced once per profile by the liked-pages stage and are not
// modified afterwards. The ID is the numeric page id used by both the Graph
// API and the mobile site.
//
// Example:
//
//	band, err := model.NewBand("19814903445", "A Day To Remember")
//	// band.ID = 19814903445
type Band struct {
	// ID is the numeric page id.
	ID int64 `json:"id"`

	// Name is the page display name.
	Name string `json:"name"`
}

// NewBand creates a Band from the string id returned by the API.
//
// Returns an error if the id is not a decimal integer.
func NewBand(id, name string) (Band, error) {
	n, err := ParseID(id)
	if err != nil {
		return Band{}, fmt.Errorf("band %q: %w", name, err)
	}
	return Band{ID: n, Name: name}, nil
}

// String returns "Name (id)".
func (b Band) String() string {
	return fmt.Sprintf("%s (%d)", b.Name, b.ID)
}

// ParseID normalises a page or event id to an integer.
func ParseID(id string) (int64, error) {
	id = strings.TrimSpace(id)
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return n, nil
}
