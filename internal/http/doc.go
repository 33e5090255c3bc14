// Package http provides the per-host HTTP client used by the page sources.
//
// Each Client wraps a resty client bound to one base URL, so connections to
// the API host and the HTML host are reused for the whole run. Every
// request carries a browser-like header set, the optional session cookie
// and a per-call timeout.
//
// # Basic Usage
//
//	client, err := http.NewClient(http.Options{
//	    BaseURL: "https://graph.facebook.com",
//	    Timeout: 30 * time.Second,
//	})
//	defer client.Close()
//
//	body, err := client.Get(ctx, "/v4.0/me/music", map[string]string{"limit": "100"}, nil)
//
// # Errors
//
// Non-2xx responses are returned as *StatusError:
//
//	var se *http.StatusError
//	if errors.As(err, &se) && se.StatusCode == 404 { ... }
//
// # Metrics
//
// Requests are counted per host and status (giglist_http_requests_total)
// and timed per host (giglist_http_request_duration_seconds).
package http
