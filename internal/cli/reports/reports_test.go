package reports

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/config"
	"github.com/julianstephens/tinywins/internal/export"
	"github.com/julianstephens/tinywins/internal/storage"
)

// newContext seeds a history around Wednesday 2024-03-06.
func newContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		Timezone: "UTC",
		Storage:  config.StorageConfig{Backend: "memory", Key: "routineData_v1"},
		Autosave: config.AutosaveConfig{Debounce: 300 * time.Millisecond, FlushDelay: 50 * time.Millisecond},
	}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC))
	ctx, err := cli.NewContext(cfg, storage.NewMemoryStore(), clock)
	require.NoError(t, err)
	require.NoError(t, ctx.Open())

	tr := ctx.Tracker
	for _, d := range []struct {
		date    string
		anchors []string
		done    int
		mood    int
	}{
		{"2024-02-27", []string{"Old"}, 1, 2},
		{"2024-03-04", []string{"Run", "Read"}, 1, 4},
		{"2024-03-05", []string{"Write"}, 0, 0},
	} {
		require.NoError(t, tr.SelectDate(d.date))
		for i, a := range d.anchors {
			tr.EditAnchor(i, a)
		}
		tr.Submit()
		for i := 0; i < d.done; i++ {
			tr.ToggleCompletion(i)
		}
		if d.mood > 0 {
			require.NoError(t, tr.SetMood(d.mood))
			tr.ToggleCheckIn()
		}
	}

	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestWeekThisWeek(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&WeekCmd{}).Run(ctx))

	s := out.String()
	assert.Contains(t, s, "2024-03-03 → 2024-03-09")
	assert.Contains(t, s, "2024-03-04")
	assert.Contains(t, s, "2024-03-05")
	assert.NotContains(t, s, "2024-02-27")
	assert.Contains(t, s, "Days: 2  Tasks: 1/3  Check-ins: 1")
	assert.Contains(t, s, "Avg mood: 4.0")
}

func TestWeekLastAndCustom(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&WeekCmd{Last: true}).Run(ctx))
	assert.Contains(t, out.String(), "2024-02-27")
	assert.Contains(t, out.String(), "Days: 1")

	out.Reset()
	require.NoError(t, (&WeekCmd{From: "2024-02-01", To: "2024-03-31"}).Run(ctx))
	assert.Contains(t, out.String(), "Days: 3")
}

func TestWeekValidation(t *testing.T) {
	ctx, _ := newContext(t)
	assert.Error(t, (&WeekCmd{From: "2024-02-01"}).Run(ctx))
	assert.Error(t, (&WeekCmd{Last: true, From: "2024-02-01", To: "2024-02-02"}).Run(ctx))
	assert.Error(t, (&WeekCmd{From: "2024-02-31", To: "2024-03-01"}).Run(ctx))
}

func TestWeekEmpty(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&WeekCmd{From: "2023-01-01", To: "2023-01-07"}).Run(ctx))
	assert.Contains(t, out.String(), "No entries in this range.")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "■□ ", bar(1, 2))
	assert.Equal(t, "■■■", bar(3, 3))
	assert.Equal(t, "   ", bar(0, 0))
}

func TestCalendar(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&CalendarCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "March 2024")

	out.Reset()
	require.NoError(t, (&CalendarCmd{Month: "2024-02"}).Run(ctx))
	assert.Contains(t, out.String(), "February 2024")
	assert.Contains(t, out.String(), "27✓")

	assert.Error(t, (&CalendarCmd{Month: "2024-13"}).Run(ctx))
}

func TestExportJSONToStdout(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&ExportCmd{Format: "json"}).Run(ctx))

	var doc export.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "all", doc.Range)
	require.Len(t, doc.Points, 3)
	assert.Equal(t, "2024-02-27", doc.Points[0].Date)
	assert.Equal(t, 3, doc.Totals.Days)
}

func TestExportYAMLToFile(t *testing.T) {
	ctx, out := newContext(t)
	path := filepath.Join(t.TempDir(), "week.yaml")

	require.NoError(t, (&ExportCmd{Format: "yaml", Output: path, Range: "thisWeek"}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Exported 2 entries")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc export.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "thisWeek", doc.Range)
	assert.Equal(t, "2024-03-03", doc.Start)
	assert.Len(t, doc.Points, 2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExportRejectsUnknownRange(t *testing.T) {
	ctx, _ := newContext(t)
	assert.Error(t, (&ExportCmd{Format: "json", Range: "fortnight"}).Run(ctx))
}
