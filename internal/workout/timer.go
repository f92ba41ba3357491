package workout

import "time"

// TimerStatus is the workout session timer's run state.
type TimerStatus string

const (
	TimerRunning TimerStatus = "running"
	TimerPaused  TimerStatus = "paused"
)

// TimerState is the persisted per-user, per-date session timer. Invariant:
// when running, StartTime is non-nil and elapsed = accumulated + (now - start);
// when paused, elapsed = accumulated exactly.
type TimerState struct {
	Status             TimerStatus `json:"status"`
	AccumulatedSeconds int         `json:"accumulatedSeconds"`
	StartTime          *time.Time  `json:"startTime,omitempty"`
}

// Elapsed returns total elapsed seconds as of now.
func (t TimerState) Elapsed(now time.Time) int {
	if t.Status == TimerRunning && t.StartTime != nil {
		return t.AccumulatedSeconds + int(now.Sub(*t.StartTime).Seconds())
	}
	return t.AccumulatedSeconds
}

// Start transitions the timer to running. Starting a running timer is a no-op.
func (t TimerState) Start(now time.Time) TimerState {
	if t.Status == TimerRunning {
		return t
	}
	t.Status = TimerRunning
	t.StartTime = &now
	return t
}

// Pause folds the running interval into AccumulatedSeconds and clears
// StartTime. Pausing a paused timer is a no-op.
func (t TimerState) Pause(now time.Time) TimerState {
	if t.Status != TimerRunning {
		return t
	}
	t.AccumulatedSeconds = t.Elapsed(now)
	t.Status = TimerPaused
	t.StartTime = nil
	return t
}
