package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Format represents a supported report output format.
//
//   - Tree: nested list, one branch per band (default)
//   - Table: one row per event
//   - JSON: the Report as indented JSON, absent fields omitted
type Format int

const (
	FormatTree Format = iota
	FormatTable
	FormatJSON
)

// absent is printed in place of a missing field.
const absent = "-"

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "tree":
		return FormatTree, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatTree, fmt.Errorf("unknown report format %q", name)
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatJSON:
		return "json"
	default:
		return "tree"
	}
}

// Printer renders a Report.
//
// Example:
//
//	printer := NewPrinter(FormatTable)
//	if err := printer.Print(os.Stdout, report); err != nil {
//	    return err
//	}
type Printer struct {
	format Format
}

// NewPrinter creates a Printer for format.
func NewPrinter(format Format) *Printer {
	return &Printer{format: format}
}

// Print writes the rendered report to w.
func (p *Printer) Print(w io.Writer, r *model.Report) error {
	switch p.format {
	case FormatJSON:
		return printJSON(w, r)
	case FormatTable:
		_, err := fmt.Fprintln(w, renderTable(r))
		return err
	default:
		_, err := fmt.Fprintln(w, RenderTree(r))
		return err
	}
}

// RenderTree renders the report as a nested list:
//
//	A Day To Remember (19814903445)
//	  └─ Warped Tour (1234)
//	       ├─ Date: 2019-11-30T19:00:00+11:00
//	       ...
func RenderTree(r *model.Report) string {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedRounded)

	for _, be := range r.Bands {
		l.AppendItem(be.Band.String())
		l.Indent()
		if len(be.Events) == 0 {
			l.AppendItem("No upcoming events")
		}
		for _, ev := range be.Events {
			d := ev.Details
			if d == nil {
				d = &model.EventDetail{}
			}
			l.AppendItem(fmt.Sprintf("%s (%d)", model.Value(d.Title, "Untitled event"), ev.ID))
			l.Indent()
			l.AppendItem("Date: " + model.Value(d.Date, absent))
			l.AppendItem("Venue: " + model.Value(d.Venue, absent))
			l.AppendItem("Address: " + model.Value(d.Address, absent))
			l.AppendItem("Status: " + model.Value(d.Status, absent))
			l.UnIndent()
		}
		l.UnIndent()
	}

	return l.Render()
}

func renderTable(r *model.Report) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Band", "Event", "Title", "Date", "Venue", "Address", "Status"})

	for _, be := range r.Bands {
		if len(be.Events) == 0 {
			t.AppendRow(table.Row{be.Band.Name, absent, absent, absent, absent, absent, absent})
			continue
		}
		for _, ev := range be.Events {
			d := ev.Details
			if d == nil {
				d = &model.EventDetail{}
			}
			t.AppendRow(table.Row{
				be.Band.Name,
				strconv.FormatInt(ev.ID, 10),
				model.Value(d.Title, absent),
				model.Value(d.Date, absent),
				model.Value(d.Venue, absent),
				model.Value(d.Address, absent),
				model.Value(d.Status, absent),
			})
		}
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%d bands", len(r.Bands)),
		fmt.Sprintf("%d events", r.EventCount()),
	})
	return t.Render()
}

func printJSON(w io.Writer, r *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
