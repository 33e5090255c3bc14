package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables holding the session secrets.
const (
	EnvToken  = "FACEBOOK_TOKEN"
	EnvCookie = "FACEBOOK_COOKIE"
)

// ErrMissingCredential is returned when a required variable is unset or blank.
var ErrMissingCredential = errors.New("missing credential")

// Credentials are the secrets needed to talk to both hosts. They are never
// read from or written to the settings file.
type Credentials struct {
	// Token is the Graph API access token.
	Token string

	// Cookie is the session cookie for the mobile site.
	Cookie string
}

// CredentialsFromEnv reads Credentials from the environment.
//
// Every missing variable is reported, each wrapping ErrMissingCredential.
func CredentialsFromEnv() (Credentials, error) {
	var errs []error
	read := func(name string) string {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			errs = append(errs, fmt.Errorf("%w: %s is not set", ErrMissingCredential, name))
		}
		return v
	}

	creds := Credentials{
		Token:  read(EnvToken),
		Cookie: read(EnvCookie),
	}
	if len(errs) > 0 {
		return Credentials{}, errors.Join(errs...)
	}
	return creds, nil
}
