// Package model defines the core data structures used throughout gig-list.
//
// # Band
//
// Band is a liked page of the crawled profile:
//
//	band, err := model.NewBand("19814903445", "A Day To Remember")
//
// # Events
//
// EventRef is the lightweight record produced by the event listing stage.
// EventDetail carries the optional fields extracted from an event page:
//
//	detail := &model.EventDetail{Title: model.Text("Warped Tour")}
//	fmt.Println(model.Value(detail.Venue, "-")) // "-"
//
// # Report
//
// Report is the nested result of a crawl:
//
//	for _, be := range report.Bands {
//	    fmt.Println(be.Band.Name, len(be.Events))
//	}
package model
