package capacity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fieldassist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned windows and counts upstream calls.
type fakeSource struct {
	techs   []string
	windows map[string][]models.TimeWindow
	err     error
	gate    chan struct{} // when set, ListTechnicians blocks until closed

	listCalls atomic.Int32
}

func (f *fakeSource) ListTechnicians(ctx context.Context, date string) ([]string, error) {
	f.listCalls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.techs, nil
}

func (f *fakeSource) GetOpenWindows(ctx context.Context, technicianID, date string) ([]models.TimeWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.windows[technicianID], nil
}

func newTestEngine(src AvailabilitySource, now time.Time) *Engine {
	eng := NewEngine(src, USHolidayCalendar{}, 16, 5*time.Minute)
	eng.Now = func() time.Time { return now }
	return eng
}

func TestSnapshotBusyWeekdayMorning(t *testing.T) {
	now := mustTime(t, "2026-03-04 09:00")
	src := &fakeSource{
		techs: []string{"alice", "bob", "carol"},
		windows: map[string][]models.TimeWindow{
			"alice": {{Start: 9 * 60, End: 16 * 60}},                           // 80
			"bob":   {{Start: 9 * 60, End: 15*60 + 30}},                        // 75
			"carol": {{Start: 9 * 60, End: 13 * 60}, {Start: 13 * 60, End: 16 * 60}}, // 90
		},
	}
	eng := newTestEngine(src, now)

	snap := eng.Snapshot(context.Background())

	assert.Equal(t, models.StateSameDayFeeWaived, snap.OverallState)
	assert.True(t, snap.FeeWaived())
	assert.GreaterOrEqual(t, snap.OverallScore, 70)
	assert.Equal(t, "Fee waived today", snap.UICopy.Badge)
	assert.Len(t, snap.PerTechnician, 3)
	assert.Equal(t, 80, snap.PerTechnician["alice"].Score)
	assert.Equal(t, 75, snap.PerTechnician["bob"].Score)
	assert.Equal(t, 90, snap.PerTechnician["carol"].Score)
}

func TestSnapshotPastCutoff(t *testing.T) {
	now := mustTime(t, "2026-03-04 17:30")
	src := &fakeSource{
		techs: []string{"alice"},
		windows: map[string][]models.TimeWindow{
			"alice": {{Start: 9 * 60, End: 16 * 60}},
		},
	}
	eng := newTestEngine(src, now)

	snap := eng.Snapshot(context.Background())

	assert.Equal(t, models.StateAfterCutoff, snap.OverallState)
	assert.False(t, snap.FeeWaived())
	assert.False(t, snap.UICopy.Urgent)
}

func TestSnapshotIdempotentWithinTTL(t *testing.T) {
	now := mustTime(t, "2026-03-04 09:00")
	src := &fakeSource{techs: []string{"alice"}, windows: map[string][]models.TimeWindow{
		"alice": {{Start: 9 * 60, End: 16 * 60}},
	}}
	eng := newTestEngine(src, now)

	first := eng.Snapshot(context.Background())
	second := eng.Snapshot(context.Background())

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, src.listCalls.Load())
}

func TestSnapshotSafeDefaultOnSourceFailure(t *testing.T) {
	now := mustTime(t, "2026-03-04 09:00")
	src := &fakeSource{err: errors.New("dispatch platform down")}
	eng := newTestEngine(src, now)

	snap := eng.Snapshot(context.Background())

	assert.Equal(t, models.StateNextDay, snap.OverallState)
	assert.Equal(t, 0, snap.OverallScore)
	assert.Empty(t, snap.UICopy.Badge)
	assert.False(t, snap.UICopy.Urgent)
	assert.NotEmpty(t, snap.UICopy.Headline)
	assert.True(t, snap.ExpiresAt.After(now))
}

func TestSnapshotExpiresAtMonotonic(t *testing.T) {
	current := mustTime(t, "2026-03-04 09:00")
	src := &fakeSource{techs: []string{"alice"}, windows: map[string][]models.TimeWindow{
		"alice": {{Start: 9 * 60, End: 16 * 60}},
	}}
	eng := NewEngine(src, USHolidayCalendar{}, 16, 5*time.Minute)
	eng.Now = func() time.Time { return current }

	first := eng.Snapshot(context.Background())

	// Step past the TTL boundary and recompute.
	current = current.Add(6 * time.Minute)
	second := eng.Snapshot(context.Background())

	require.False(t, second.ExpiresAt.Before(first.ExpiresAt))
	assert.EqualValues(t, 2, src.listCalls.Load())
}

func TestSnapshotDropsRolledOverDays(t *testing.T) {
	current := mustTime(t, "2026-03-04 09:00")
	src := &fakeSource{techs: []string{"alice"}, windows: map[string][]models.TimeWindow{
		"alice": {{Start: 9 * 60, End: 16 * 60}},
	}}
	eng := NewEngine(src, USHolidayCalendar{}, 16, 5*time.Minute)
	eng.Now = func() time.Time { return current }

	eng.Snapshot(context.Background())

	// Cross midnight twice; only the newest day's entry should remain.
	for i := 0; i < 2; i++ {
		current = current.AddDate(0, 0, 1)
		eng.Snapshot(context.Background())
	}

	eng.mu.RLock()
	defer eng.mu.RUnlock()
	require.Len(t, eng.cache, 1)
	_, ok := eng.cache[current.Format("2006-01-02")]
	assert.True(t, ok)
}

func TestSnapshotSharesOneComputation(t *testing.T) {
	now := mustTime(t, "2026-03-04 09:00")
	src := &fakeSource{
		techs:   []string{"alice"},
		windows: map[string][]models.TimeWindow{"alice": {{Start: 9 * 60, End: 16 * 60}}},
		gate:    make(chan struct{}),
	}
	eng := newTestEngine(src, now)

	const callers = 8
	var wg sync.WaitGroup
	snaps := make([]models.CapacitySnapshot, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i] = eng.Snapshot(context.Background())
		}(i)
	}

	// Let every caller reach the in-flight computation, then release it.
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.EqualValues(t, 1, src.listCalls.Load())
	for i := 1; i < callers; i++ {
		assert.Equal(t, snaps[0], snaps[i])
	}
}
