package model

// BandEvents groups the events found for one band.
type BandEvents struct {
	Band   Band    `json:"band"`
	Events []Event `json:"events"`
}

// Report is the nested Band -> Events result of a crawl.
//
// A Report is assembled in memory from independently cached stages and is
// never persisted as a whole.
type Report struct {
	Bands []BandEvents `json:"bands"`
}

// EventCount returns the total number of events over all bands.
func (r *Report) EventCount() int {
	n := 0
	for _, b := range r.Bands {
		n += len(b.Events)
	}
	return n
}

// DetailedCount returns the number of events with at least one detail field.
func (r *Report) DetailedCount() int {
	n := 0
	for _, b := range r.Bands {
		for _, e := range b.Events {
			if !e.Details.IsEmpty() {
				n++
			}
		}
	}
	return n
}
