package extract

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZimbiX/gig-list-en/internal/model"
)

// StatusUnresponded is reported when the RSVP control shows only its icon.
const StatusUnresponded = "Unresponded"

// ErrUnexpectedIconCount is wrapped by IconCountError.
var ErrUnexpectedIconCount = errors.New("unexpected icon count in status control")

// IconCountError reports a status control whose icon count is neither 1 nor 2.
type IconCountError struct {
	Count int
}

func (e *IconCountError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnexpectedIconCount, e.Count)
}

func (e *IconCountError) Unwrap() error {
	return ErrUnexpectedIconCount
}

// StatusTransform reads the RSVP state from the status control.
//
// One icon means the viewer has not responded. Two icons means a response
// was given and its label is the node's visible text. Any other count is an
// *IconCountError.
func StatusTransform(sel *goquery.Selection) (*string, error) {
	switch n := sel.Find("i").Length(); n {
	case 1:
		s := StatusUnresponded
		return &s, nil
	case 2:
		return model.Text(sel.Text()), nil
	default:
		return nil, &IconCountError{Count: n}
	}
}
