package config

// Refresh selects which cached stages are recomputed on this run.
type Refresh struct {
	Bands        bool
	EventIDs     bool
	EventDetails bool
	EventHTML    bool
}

// RefreshAll recomputes every stage.
func RefreshAll() Refresh {
	return Refresh{Bands: true, EventIDs: true, EventDetails: true, EventHTML: true}
}

// Any reports whether at least one stage is refreshed.
func (r Refresh) Any() bool {
	return r.Bands || r.EventIDs || r.EventDetails || r.EventHTML
}
