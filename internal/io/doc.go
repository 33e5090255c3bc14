// Package ioutils provides file system utilities for gig-list.
//
// This package contains functions for:
//   - Atomic file writing (temp file + rename)
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//
// The cache store uses these to persist one file per entry:
//
//	name := ioutils.SanitizeFileName("event-details-for-event-42") + ".json"
//	err := ioutils.EnsureDir(dir)
//	err = ioutils.WriteFileAtomic(filepath.Join(dir, name), data)
package ioutils
