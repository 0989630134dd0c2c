package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/summary"
)

// Wednesday
var now = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

func history() []models.Entry {
	return []models.Entry{
		{Date: "2024-03-05", Anchors: []string{"Run", "Read"}, Completed: []bool{true, true}, Mood: 4, Journal: "good"},
		{Date: "2024-02-27", Anchors: []string{"Old"}, Completed: []bool{false}},
		{Date: "2024-03-03", Anchors: []string{"Write", " "}, Completed: []bool{true, false}, Mood: 2},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestBuildAll(t *testing.T) {
	doc := Build(history(), summary.Request{}, now)

	assert.Equal(t, "tinywins", doc.App)
	assert.Equal(t, "all", doc.Range)
	assert.Empty(t, doc.Start)
	require.Len(t, doc.Points, 3)
	assert.Equal(t, "2024-02-27", doc.Points[0].Date)
	assert.Equal(t, "2024-03-05", doc.Points[2].Date)
	assert.Equal(t, 3, doc.Totals.Days)
	assert.Equal(t, 3, doc.Totals.TasksDone)
	assert.Equal(t, 2, doc.Totals.CheckIns)
	assert.InDelta(t, 3.0, doc.Totals.AverageMood, 0.001)
	assert.Equal(t, "2024-03-06T10:00:00.000Z", doc.ExportedAt)
}

func TestBuildThisWeek(t *testing.T) {
	doc := Build(history(), summary.Request{Range: summary.ThisWeek}, now)

	assert.Equal(t, "thisWeek", doc.Range)
	assert.Equal(t, "2024-03-03", doc.Start)
	assert.Equal(t, "2024-03-09", doc.End)
	require.Len(t, doc.Points, 2)
	assert.Equal(t, []string{"Write"}, doc.Points[0].Anchors)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Build(history(), summary.Request{}, now), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "all", decoded["range"])
	assert.Len(t, decoded["points"], 3)
	assert.Contains(t, buf.String(), `"completedList"`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Build(history(), summary.Request{Range: summary.LastWeek}, now), FormatYAML))

	var decoded Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "lastWeek", decoded.Range)
	require.Len(t, decoded.Points, 1)
	assert.Equal(t, "2024-02-27", decoded.Points[0].Date)
	assert.Equal(t, "2024-02-25", decoded.Start)
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Document{}, Format("xml")))
}
