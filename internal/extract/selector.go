package extract

import (
	"fmt"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZimbiX/gig-list-en/internal/model"
)

// StrategySelector is the name of the selector extractor.
const StrategySelector = "selector"

// Field names an EventDetail field a Rule fills.
type Field string

const (
	FieldTitle   Field = "title"
	FieldDate    Field = "date"
	FieldVenue   Field = "venue"
	FieldAddress Field = "address"
	FieldStatus  Field = "status"
)

// Fields lists every field in report order.
var Fields = []Field{FieldTitle, FieldDate, FieldVenue, FieldAddress, FieldStatus}

// Transform turns the selected node into a field value. A nil value means
// the field is absent.
type Transform func(sel *goquery.Selection) (*string, error)

// Rule locates one field by CSS selector and match position.
type Rule struct {
	Field    Field
	Selector string

	// Index selects among the nodes matching Selector, starting at 0.
	Index int

	// Transform replaces the default of taking the node's trimmed text.
	Transform Transform
}

// Override replaces the selector or index of a default rule.
type Override struct {
	Selector string
	Index    *int
}

// DefaultRules returns the rules for the mobile event page markup.
func DefaultRules() []Rule {
	return []Rule{
		{Field: FieldTitle, Selector: "#event_header h3", Index: 0},
		{Field: FieldDate, Selector: "#event_summary ._52je", Index: 0},
		{Field: FieldVenue, Selector: "#event_summary ._52je", Index: 1},
		{Field: FieldAddress, Selector: "#event_summary ._52ja", Index: 1},
		{Field: FieldStatus, Selector: "#event_button_bar ._56bz", Index: 0, Transform: StatusTransform},
	}
}

// ApplyOverrides returns a copy of rules with overrides applied by field.
// Transforms are kept.
//
// Example:
//
//	idx := 2
//	rules, err := ApplyOverrides(DefaultRules(), map[Field]Override{
//	    FieldVenue: {Index: &idx},
//	})
func ApplyOverrides(rules []Rule, overrides map[Field]Override) ([]Rule, error) {
	out := make([]Rule, len(rules))
	copy(out, rules)

	fields := make([]string, 0, len(overrides))
	for f := range overrides {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	for _, f := range fields {
		o := overrides[Field(f)]
		found := false
		for i := range out {
			if out[i].Field != Field(f) {
				continue
			}
			found = true
			if o.Selector != "" {
				out[i].Selector = o.Selector
			}
			if o.Index != nil {
				if *o.Index < 0 {
					return nil, fmt.Errorf("selector override for %s: negative index %d", f, *o.Index)
				}
				out[i].Index = *o.Index
			}
		}
		if !found {
			return nil, fmt.Errorf("selector override for unknown field %q", f)
		}
	}
	return out, nil
}

// Selector fills fields from positional CSS selector rules.
type Selector struct {
	rules []Rule
}

// NewSelector creates a selector extractor from rules.
func NewSelector(rules []Rule) *Selector {
	return &Selector{rules: rules}
}

// Name implements Extractor.
func (s *Selector) Name() string {
	return StrategySelector
}

// Extract implements Extractor. A rule whose node is missing, or whose text
// is blank, leaves its field absent.
func (s *Selector) Extract(doc *goquery.Document) (*model.EventDetail, error) {
	detail := &model.EventDetail{}

	for _, rule := range s.rules {
		sel := doc.Find(rule.Selector).Eq(rule.Index)
		if sel.Length() == 0 {
			continue
		}

		var value *string
		if rule.Transform != nil {
			v, err := rule.Transform(sel)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", rule.Field, err)
			}
			value = v
		} else {
			value = model.Text(sel.Text())
		}

		switch rule.Field {
		case FieldTitle:
			detail.Title = value
		case FieldDate:
			detail.Date = value
		case FieldVenue:
			detail.Venue = value
		case FieldAddress:
			detail.Address = value
		case FieldStatus:
			detail.Status = value
		default:
			return nil, fmt.Errorf("rule for unknown field %q", rule.Field)
		}
	}

	return detail, nil
}
