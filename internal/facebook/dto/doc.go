// Package dto holds the wire formats read from Facebook: the Graph API
// listing pages and the schema.org event embedded in event pages.
package dto
