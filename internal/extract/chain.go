package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZimbiX/gig-list-en/internal/model"
)

// Extractor pulls event detail out of a parsed event page.
//
// A nil detail with a nil error means the extractor found nothing it
// recognises and the next one should be tried.
type Extractor interface {
	Name() string
	Extract(doc *goquery.Document) (*model.EventDetail, error)
}

// Chain runs extractors in order and keeps the first result.
//
// Example usage:
//
//	chain := NewDefaultChain(DefaultRules())
//	detail, strategy, err := chain.Extract(html)
//	if detail == nil {
//	    // neither strategy recognised the page
//	}
type Chain struct {
	extractors []Extractor
}

// NewChain creates a Chain trying extractors in the given order.
func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// NewDefaultChain returns the structured-data strategy followed by the
// selector strategy configured with rules.
func NewDefaultChain(rules []Rule) *Chain {
	return NewChain(NewStructured(), NewSelector(rules))
}

// Extract parses html once and returns the first non-empty detail together
// with the name of the extractor that produced it.
//
// An extractor error stops the chain. If no extractor produces a detail the
// result is (nil, "", nil).
func (c *Chain) Extract(html string) (*model.EventDetail, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", fmt.Errorf("parse event page: %w", err)
	}

	for _, e := range c.extractors {
		detail, err := e.Extract(doc)
		if err != nil {
			Extractions.WithLabelValues(e.Name(), "error").Inc()
			return nil, e.Name(), fmt.Errorf("%s: %w", e.Name(), err)
		}
		if !detail.IsEmpty() {
			Extractions.WithLabelValues(e.Name(), "ok").Inc()
			return detail, e.Name(), nil
		}
	}

	Extractions.WithLabelValues("none", "empty").Inc()
	return nil, "", nil
}
