// Package config provides configuration management for gig-list.
//
// This package handles:
//   - Loading settings from json5 files, with a ".local" override file
//   - Default configuration values
//   - Credentials from the environment
//   - Per-stage cache refresh toggles
//
// # Loading from File
//
//	settings, err := config.Load("gig-list.json5")
//	// Also merges gig-list.local.json5 if present.
//	// Missing files leave defaults in place.
//
// # Credentials
//
// The Graph API token and the mobile site cookie are read from
// FACEBOOK_TOKEN and FACEBOOK_COOKIE:
//
//	creds, err := config.CredentialsFromEnv()
//	if errors.Is(err, config.ErrMissingCredential) {
//	    // err names every missing variable
//	}
package config
