// Package extract turns event page HTML into model.EventDetail.
//
// Extraction is a chain of strategies tried in order; the first one that
// produces a non-empty detail wins:
//
//  1. Structured: the schema.org Event the page embeds in a script block,
//     found by its PostalAddress marker and decoded leniently with json5.
//  2. Selector: positional CSS selector rules over the page markup. The
//     status field uses StatusTransform, which reads the RSVP control.
//
// # Usage
//
//	chain := extract.NewDefaultChain(extract.DefaultRules())
//	detail, strategy, err := chain.Extract(html)
//
// Selector rules can be adjusted without code changes through
// ApplyOverrides, which the configuration feeds.
//
// # Errors
//
// A script block with the marker that is not a named event is
// ErrMalformedStructuredData. An RSVP control with an unexpected number of
// icons is *IconCountError. Both stop the chain for that page.
package extract
