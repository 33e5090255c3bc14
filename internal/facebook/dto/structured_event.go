package dto

import (
	"strings"
)

// StructuredEvent is the schema.org Event embedded in an event page as a
// script block. Only the fields the report uses are decoded.
type StructuredEvent struct {
	Type        string    `json:"@type"`
	Name        string    `json:"name"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	EventStatus string    `json:"eventStatus"`
	Location    *Location `json:"location"`
}

// Location is a schema.org Place.
//
// Address is usually a PostalAddress object but some pages embed a plain
// string, so it is decoded loosely and read through AddressLines.
type Location struct {
	Type    string `json:"@type"`
	Name    string `json:"name"`
	Address any    `json:"address"`
}

// addressParts are the PostalAddress keys in postal order.
var addressParts = []string{
	"streetAddress",
	"addressLocality",
	"addressRegion",
	"postalCode",
	"addressCountry",
}

// AddressLines returns the non-blank address parts in postal order.
func (l *Location) AddressLines() []string {
	if l == nil {
		return nil
	}

	switch addr := l.Address.(type) {
	case string:
		if t := strings.TrimSpace(addr); t != "" {
			return []string{t}
		}
	case map[string]any:
		var lines []string
		for _, key := range addressParts {
			s, ok := addr[key].(string)
			if !ok {
				continue
			}
			if t := strings.TrimSpace(s); t != "" {
				lines = append(lines, t)
			}
		}
		return lines
	}
	return nil
}

var statusPrefixes = []string{"http://schema.org/", "https://schema.org/"}

// Status returns EventStatus without the schema.org URL prefix, e.g.
// "EventScheduled".
func (e *StructuredEvent) Status() string {
	s := strings.TrimSpace(e.EventStatus)
	for _, p := range statusPrefixes {
		s = strings.TrimPrefix(s, p)
	}
	return s
}
