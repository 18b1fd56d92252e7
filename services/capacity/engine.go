package capacity

import (
	"context"
	"sync"
	"time"

	"fieldassist/models"
	"fieldassist/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const sourceTimeout = 3 * time.Second

// Engine produces one cache-coherent CapacitySnapshot per calendar day.
// It is an explicit, injectable component: tests construct independent
// instances instead of sharing package state.
type Engine struct {
	Source        AvailabilitySource
	Calendar      Calendar
	CutoffHour    int           // same-day bookings close at this local hour
	RefreshEvery  time.Duration // snapshot TTL quantum
	Now           func() time.Time

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]models.CapacitySnapshot // keyed by calendar day
}

// NewEngine builds an Engine with the given collaborators.
func NewEngine(source AvailabilitySource, cal Calendar, cutoffHour int, refreshEvery time.Duration) *Engine {
	if cal == nil {
		cal = USHolidayCalendar{}
	}
	return &Engine{
		Source:       source,
		Calendar:     cal,
		CutoffHour:   cutoffHour,
		RefreshEvery: refreshEvery,
		Now:          time.Now,
		cache:        make(map[string]models.CapacitySnapshot),
	}
}

// Snapshot returns the current day's capacity snapshot. Expiry triggers a lazy
// recomputation; concurrent callers of an expired entry share one upstream
// computation. This method never returns an error: a failing or slow source
// degrades to the safe default snapshot, since capacity is advisory.
func (e *Engine) Snapshot(ctx context.Context) models.CapacitySnapshot {
	now := e.Now()
	day := now.Format("2006-01-02")

	e.mu.RLock()
	cached, ok := e.cache[day]
	e.mu.RUnlock()
	if ok && now.Before(cached.ExpiresAt) {
		return cached
	}

	v, _, _ := e.group.Do(day, func() (any, error) {
		snap := e.compute(ctx, now)
		e.mu.Lock()
		// ExpiresAt must be monotonically non-decreasing for the same day.
		if prev, ok := e.cache[day]; ok && snap.ExpiresAt.Before(prev.ExpiresAt) {
			snap.ExpiresAt = prev.ExpiresAt
		}
		// Only today's entry is ever read again; drop rolled-over days.
		for k := range e.cache {
			if k != day {
				delete(e.cache, k)
			}
		}
		e.cache[day] = snap
		e.mu.Unlock()
		return snap, nil
	})
	return v.(models.CapacitySnapshot)
}

func (e *Engine) compute(ctx context.Context, now time.Time) models.CapacitySnapshot {
	logger := utils.GetLogger()
	day := now.Format("2006-01-02")

	srcCtx, cancel := context.WithTimeout(ctx, sourceTimeout)
	defer cancel()

	techIDs, err := e.Source.ListTechnicians(srcCtx, day)
	if err != nil {
		degraded := &utils.DegradedDataError{Source: "availability", Err: err}
		logger.Warn("capacity: falling back to safe default snapshot", zap.Error(degraded))
		return e.safeDefault(now)
	}

	perTech := make(map[string]models.TechCapacity, len(techIDs))
	for _, id := range techIDs {
		windows, err := e.Source.GetOpenWindows(srcCtx, id, day)
		if err != nil {
			degraded := &utils.DegradedDataError{Source: "availability", Err: err}
			logger.Warn("capacity: falling back to safe default snapshot",
				zap.String("technician", id), zap.Error(degraded))
			return e.safeDefault(now)
		}
		score, usable := scoreTechnician(windows, now, e.CutoffHour)
		perTech[id] = models.TechCapacity{Score: score, OpenWindows: usable}
	}

	overall := aggregateScores(perTech)
	state := resolveState(overall, now, e.CutoffHour, e.Calendar)

	return models.CapacitySnapshot{
		OverallScore:  overall,
		OverallState:  state,
		PerTechnician: perTech,
		UICopy:        CopyFor(state),
		ExpiresAt:     e.nextExpiry(now),
	}
}

// safeDefault is the advisory fallback when availability data is missing:
// NEXT_DAY, no badge, not urgent. It carries a short TTL so a recovered source
// is picked up quickly.
func (e *Engine) safeDefault(now time.Time) models.CapacitySnapshot {
	state := models.StateNextDay
	uiCopy := CopyFor(state)
	uiCopy.Badge = ""
	uiCopy.Urgent = false
	return models.CapacitySnapshot{
		OverallScore:  0,
		OverallState:  state,
		PerTechnician: map[string]models.TechCapacity{},
		UICopy:        uiCopy,
		ExpiresAt:     e.nextExpiry(now),
	}
}

// nextExpiry quantizes expiry to RefreshEvery boundaries, which keeps ExpiresAt
// non-decreasing across successive computations within a day.
func (e *Engine) nextExpiry(now time.Time) time.Time {
	return now.Truncate(e.RefreshEvery).Add(e.RefreshEvery)
}
