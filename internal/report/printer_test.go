package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *model.Report {
	return &model.Report{Bands: []model.BandEvents{
		{
			Band: model.Band{ID: 19814903445, Name: "A Day To Remember"},
			Events: []model.Event{
				{ID: 1001, Details: &model.EventDetail{
					Title:  model.Text("Warped Tour"),
					Date:   model.Text("2019-11-30"),
					Venue:  model.Text("Flemington"),
					Status: model.Text("Unresponded"),
				}},
				{ID: 1002},
			},
		},
		{Band: model.Band{ID: 7, Name: "Quiet Band"}, Events: []model.Event{}},
	}}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"", FormatTree, false},
		{"tree", FormatTree, false},
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatTree, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.name != "" {
				assert.Equal(t, tt.name, got.String())
			}
		})
	}
}

func TestPrint_Tree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(FormatTree).Print(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "A Day To Remember (19814903445)")
	assert.Contains(t, out, "Warped Tour (1001)")
	assert.Contains(t, out, "Venue: Flemington")
	assert.Contains(t, out, "Address: -")
	assert.Contains(t, out, "Untitled event (1002)")
	assert.Contains(t, out, "Quiet Band (7)")
	assert.Contains(t, out, "No upcoming events")

	// Bands come before their events.
	assert.Less(t, strings.Index(out, "A Day To Remember"), strings.Index(out, "Warped Tour"))
	assert.Less(t, strings.Index(out, "Warped Tour"), strings.Index(out, "Quiet Band"))
}

func TestPrint_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(FormatTable).Print(&buf, sampleReport()))
	out := buf.String()

	// go-pretty upper-cases headers by default.
	assert.Contains(t, out, "BAND")
	assert.Contains(t, out, "ADDRESS")
	assert.Contains(t, out, "Warped Tour")
	assert.Contains(t, out, "1002")
	assert.Contains(t, out, "Quiet Band")
	assert.Contains(t, out, "2 BANDS")
	assert.Contains(t, out, "2 EVENTS")

	// One row per event, plus one placeholder row for a band without events.
	assert.Equal(t, 2, strings.Count(out, "│ A Day To Remember"))
	assert.Equal(t, 1, strings.Count(out, "│ Quiet Band"))
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(FormatJSON).Print(&buf, sampleReport()))

	assert.NotContains(t, buf.String(), `"address"`)
	assert.NotContains(t, buf.String(), `"details": null`)

	var got model.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), &got)
}
