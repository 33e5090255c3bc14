// Package cliutil holds the flags and startup steps shared by the gig-list
// command line and terminal UI binaries.
package cliutil
