package pipeline

import "github.com/ZimbiX/gig-list-en/internal/cache"

// BandsKey is the cache key of a profile's liked pages.
func BandsKey(profileID int64) string {
	return cache.Key("bands-for-profile", profileID)
}

// EventIDsKey is the cache key of a band's event listing.
func EventIDsKey(bandID int64) string {
	return cache.Key("event-ids-for-band", bandID)
}

// EventHTMLKey is the cache key of an event page's HTML.
func EventHTMLKey(eventID int64) string {
	return cache.Key("event-html-for-event", eventID)
}

// EventDetailsKey is the cache key of an event's extracted detail.
func EventDetailsKey(eventID int64) string {
	return cache.Key("event-details-for-event", eventID)
}
