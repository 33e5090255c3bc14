package facebook

import (
	"context"
	"errors"
)

// ErrMalformedPage is returned when a listing page lacks a required field.
var ErrMalformedPage = errors.New("malformed listing page")

// Fetcher performs GET requests against one host. *http.Client from
// internal/http satisfies it.
type Fetcher interface {
	Get(ctx context.Context, path string, query, headers map[string]string) ([]byte, error)
}
