package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZimbiX/gig-list-en/internal/facebook/dto"
	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/titanous/json5"
)

// StrategyStructured is the name of the structured-data extractor.
const StrategyStructured = "structured"

// ErrMalformedStructuredData is returned when a script block carries the
// postal address marker but is not a usable event.
var ErrMalformedStructuredData = errors.New("malformed structured event data")

// postalAddressMarker identifies the script block holding the event.
var postalAddressMarker = regexp.MustCompile(`"@type"\s*:\s*"PostalAddress"`)

// Structured reads the schema.org event embedded in the page.
type Structured struct{}

// NewStructured creates the structured-data extractor.
func NewStructured() *Structured {
	return &Structured{}
}

// Name implements Extractor.
func (s *Structured) Name() string {
	return StrategyStructured
}

// Extract implements Extractor. The first script containing the postal
// address marker is decoded; pages without one yield no result.
func (s *Structured) Extract(doc *goquery.Document) (*model.EventDetail, error) {
	var block string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if postalAddressMarker.MatchString(text) {
			block = strings.TrimSpace(text)
			return false
		}
		return true
	})
	if block == "" {
		return nil, nil
	}

	event, err := decodeStructuredEvent(block)
	if err != nil {
		return nil, err
	}

	detail := &model.EventDetail{
		Title:  model.Text(event.Name),
		Date:   model.Text(event.StartDate),
		Status: model.Text(event.Status()),
	}
	if event.Location != nil {
		detail.Venue = model.Text(event.Location.Name)
		detail.Address = model.Text(strings.Join(event.Location.AddressLines(), ", "))
	}
	return detail, nil
}

// decodeStructuredEvent accepts a single event object or an array holding
// one. JS-style literals are tolerated.
func decodeStructuredEvent(block string) (*dto.StructuredEvent, error) {
	if strings.HasPrefix(block, "[") {
		var events []dto.StructuredEvent
		if err := json5.Unmarshal([]byte(block), &events); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedStructuredData, err)
		}
		for i := range events {
			if strings.TrimSpace(events[i].Name) != "" {
				return &events[i], nil
			}
		}
		return nil, fmt.Errorf("%w: no named event in array", ErrMalformedStructuredData)
	}

	var event dto.StructuredEvent
	if err := json5.Unmarshal([]byte(block), &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStructuredData, err)
	}
	if strings.TrimSpace(event.Name) == "" {
		return nil, fmt.Errorf("%w: event has no name", ErrMalformedStructuredData)
	}
	return &event, nil
}
