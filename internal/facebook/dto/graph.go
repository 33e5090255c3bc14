package dto

import (
	"bytes"
	"encoding/json"
)

// MusicPage is one page of the Graph API "music" edge of a profile.
//
// Data and Paging are pointers so a missing key can be told apart from an
// empty one; both are required.
type MusicPage struct {
	Data   *[]MusicEntry `json:"data"`
	Paging *Paging       `json:"paging"`
}

// MusicEntry is a liked page as returned by the API. IDs are decimal strings.
type MusicEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Paging holds the continuation of a Graph API listing.
type Paging struct {
	// Next is kept raw: the API omits it on the last page, but null, false,
	// 0 and "" have been seen too.
	Next    json.RawMessage `json:"next"`
	Cursors *Cursors        `json:"cursors"`
}

// Cursors are the opaque page tokens of a Graph API listing.
type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// HasNext reports whether Next is truthy: present and not null, false, 0 or "".
func (p *Paging) HasNext() bool {
	if p == nil {
		return false
	}
	next := bytes.TrimSpace(p.Next)
	switch string(next) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
