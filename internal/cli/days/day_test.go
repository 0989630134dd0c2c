package days

import (
	"bytes"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/config"
	"github.com/julianstephens/tinywins/internal/persist"
	"github.com/julianstephens/tinywins/internal/storage"
)

func newContext(t *testing.T) (*cli.Context, *storage.MemoryStore, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		Timezone: "UTC",
		Storage:  config.StorageConfig{Backend: "memory", Key: "routineData_v1"},
		Autosave: config.AutosaveConfig{Debounce: 300 * time.Millisecond, FlushDelay: 50 * time.Millisecond},
	}
	store := storage.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC))

	ctx, err := cli.NewContext(cfg, store, clock)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	ctx.Out = out
	require.NoError(t, ctx.Open())
	return ctx, store, out
}

func TestPlanSubmitsEntry(t *testing.T) {
	ctx, _, out := newContext(t)

	cmd := &DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run", "Read"}, Explore: "Go generics"}
	require.NoError(t, cmd.Run(ctx))
	assert.Contains(t, out.String(), "Plan submitted for 2024-03-10 (2 anchors)")

	e, ok := ctx.Tracker.Entry("2024-03-10")
	require.True(t, ok)
	assert.Equal(t, []string{"Run", "Read"}, e.Anchors)
	assert.Equal(t, []bool{false, false, false}, e.Completed)
	assert.Equal(t, "Go generics", e.Explore)
	assert.Equal(t, 0, e.Mood)
}

func TestPlanDefaultsToToday(t *testing.T) {
	ctx, _, _ := newContext(t)
	require.NoError(t, (&DayPlanCmd{Anchor: []string{"Stretch"}}).Run(ctx))

	_, ok := ctx.Tracker.Entry("2024-03-06")
	assert.True(t, ok)
}

func TestPlanRejectsTooManyAnchors(t *testing.T) {
	ctx, _, _ := newContext(t)
	err := (&DayPlanCmd{Anchor: []string{"a", "b", "c", "d"}}).Run(ctx)
	assert.Error(t, err)
	assert.Empty(t, ctx.Tracker.Entries())
}

func TestPlanRejectsInvalidDate(t *testing.T) {
	ctx, _, _ := newContext(t)
	assert.Error(t, (&DayPlanCmd{Date: "2024-02-30", Anchor: []string{"a"}}).Run(ctx))
}

func TestDoneTogglesCommittedEntry(t *testing.T) {
	ctx, _, out := newContext(t)
	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run", "Read"}}).Run(ctx))

	require.NoError(t, (&DayDoneCmd{Date: "2024-03-10", Index: 2}).Run(ctx))
	assert.Contains(t, out.String(), `"Read" marked done`)

	e, _ := ctx.Tracker.Entry("2024-03-10")
	assert.Equal(t, []bool{false, true, false}, e.Completed)

	require.NoError(t, (&DayDoneCmd{Date: "2024-03-10", Index: 2}).Run(ctx))
	e, _ = ctx.Tracker.Entry("2024-03-10")
	assert.Equal(t, []bool{false, false, false}, e.Completed)
}

func TestDoneValidation(t *testing.T) {
	ctx, _, _ := newContext(t)
	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run"}}).Run(ctx))

	assert.Error(t, (&DayDoneCmd{Date: "2024-03-10", Index: 0}).Run(ctx))
	assert.Error(t, (&DayDoneCmd{Date: "2024-03-10", Index: 4}).Run(ctx))
	assert.Error(t, (&DayDoneCmd{Date: "2024-03-10", Index: 3}).Run(ctx), "empty slot")
}

func TestCheckinAndUndo(t *testing.T) {
	ctx, _, _ := newContext(t)
	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run", "Read"}}).Run(ctx))
	require.NoError(t, (&DayDoneCmd{Date: "2024-03-10", Index: 1}).Run(ctx))

	require.NoError(t, (&DayCheckinCmd{Date: "2024-03-10", Journal: "Good day", Mood: 4}).Run(ctx))
	e, _ := ctx.Tracker.Entry("2024-03-10")
	assert.Equal(t, "Good day", e.Journal)
	assert.Equal(t, 4, e.Mood)

	// Checking in again replaces the previous check-in
	require.NoError(t, (&DayCheckinCmd{Date: "2024-03-10", Journal: "Better", Mood: 5}).Run(ctx))
	e, _ = ctx.Tracker.Entry("2024-03-10")
	assert.Equal(t, "Better", e.Journal)
	assert.Equal(t, 5, e.Mood)

	require.NoError(t, (&DayCheckinCmd{Date: "2024-03-10", Undo: true}).Run(ctx))
	e, _ = ctx.Tracker.Entry("2024-03-10")
	assert.Equal(t, "", e.Journal)
	assert.Equal(t, 0, e.Mood)
	assert.Equal(t, []string{"Run", "Read"}, e.Anchors)
	assert.Equal(t, []bool{true, false, false}, e.Completed)

	assert.Error(t, (&DayCheckinCmd{Date: "2024-03-10", Undo: true}).Run(ctx))
}

func TestResubmitClearsCheckin(t *testing.T) {
	ctx, _, out := newContext(t)
	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run"}}).Run(ctx))
	require.NoError(t, (&DayCheckinCmd{Date: "2024-03-10", Journal: "Good day", Mood: 4}).Run(ctx))
	assert.NotContains(t, out.String(), "was cleared")

	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Walk"}}).Run(ctx))
	assert.Contains(t, out.String(), "The previous check-in for 2024-03-10 was cleared")

	e, _ := ctx.Tracker.Entry("2024-03-10")
	assert.Equal(t, []string{"Walk"}, e.Anchors)
	assert.Equal(t, 0, e.Mood)
}

func TestCheckinRequiresPlan(t *testing.T) {
	ctx, _, _ := newContext(t)
	assert.Error(t, (&DayCheckinCmd{Date: "2024-03-10", Mood: 4}).Run(ctx))
}

func TestCheckinRejectsBadMood(t *testing.T) {
	ctx, _, _ := newContext(t)
	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run"}}).Run(ctx))
	assert.Error(t, (&DayCheckinCmd{Date: "2024-03-10", Mood: 6}).Run(ctx))
	assert.Error(t, (&DayCheckinCmd{Date: "2024-03-10", Mood: 0}).Run(ctx))
}

func TestEditRequiresEntry(t *testing.T) {
	ctx, _, _ := newContext(t)
	assert.Error(t, (&DayEditCmd{Date: "2024-03-10"}).Run(ctx))

	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run"}}).Run(ctx))
	require.NoError(t, (&DayEditCmd{Date: "2024-03-10"}).Run(ctx))
	assert.False(t, ctx.Tracker.Draft().Submitted)
}

func TestFreshAndReset(t *testing.T) {
	ctx, _, _ := newContext(t)
	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run"}}).Run(ctx))
	require.NoError(t, (&DayCheckinCmd{Date: "2024-03-10", Journal: "ok", Mood: 2}).Run(ctx))

	require.NoError(t, (&DayFreshCmd{Date: "2024-03-10"}).Run(ctx))
	d := ctx.Tracker.Draft()
	assert.False(t, d.CheckedIn)
	assert.Equal(t, 3, d.Mood)
	e, _ := ctx.Tracker.Entry("2024-03-10")
	assert.Equal(t, 2, e.Mood, "fresh check-in leaves the log alone")

	require.NoError(t, (&DayResetCmd{}).Run(ctx))
	d = ctx.Tracker.Draft()
	assert.Equal(t, "2024-03-10", d.Date)
	assert.Equal(t, []string{"", "", ""}, d.Anchors)
	assert.False(t, d.Submitted)
	_, ok := ctx.Tracker.Entry("2024-03-10")
	assert.True(t, ok)
}

func TestShowRaw(t *testing.T) {
	ctx, _, out := newContext(t)
	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run", "Read"}}).Run(ctx))
	require.NoError(t, (&DayDoneCmd{Date: "2024-03-10", Index: 1}).Run(ctx))
	out.Reset()

	require.NoError(t, (&DayShowCmd{Date: "2024-03-10", Raw: true}).Run(ctx))
	s := out.String()
	assert.Contains(t, s, "# Sunday, March 10 2024")
	assert.Contains(t, s, "1. [x] Run")
	assert.Contains(t, s, "2. [ ] Read")
	assert.Contains(t, s, "**Status:** planned")
}

func TestCloseWritesState(t *testing.T) {
	ctx, store, _ := newContext(t)
	require.NoError(t, (&DayPlanCmd{Date: "2024-03-10", Anchor: []string{"Run"}}).Run(ctx))
	require.NoError(t, ctx.Close())

	data, err := store.Get("routineData_v1")
	require.NoError(t, err)
	patch, err := persist.DecodeBlob(data)
	require.NoError(t, err)
	require.Len(t, patch.History, 1)
	assert.Equal(t, "2024-03-10", patch.History[0].Date)
	require.NotNil(t, patch.DateInput)
	assert.Equal(t, "2024-03-10", *patch.DateInput)
}
