// Package report renders a crawl Report for the terminal or for other tools.
//
// Supported formats:
//   - tree (nested list, default)
//   - table (one row per event)
//   - json (indented, absent fields omitted)
//
// In tree and table output absent fields are shown as "-".
package report
