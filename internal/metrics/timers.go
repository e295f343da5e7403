// Package metrics records the wall time spent in each stage of a run.
package metrics

import (
	"sync"
	"time"
)

// Timers holds one timer per stage. Set starts a stage and stops the
// previous one, so consecutive calls record laps.
type Timers struct {
	Timers map[string]*Timer `json:"timers,omitempty"`

	mu   sync.Mutex
	last string
}

func NewTimers() *Timers {
	return &Timers{Timers: make(map[string]*Timer)}
}

// toggle starts the timer k, or stops it when already started.
func (ts *Timers) toggle(k string, now time.Time) {
	t, ok := ts.Timers[k]
	if !ok {
		ts.Timers[k] = &Timer{start: now}
		return
	}
	t.Seconds = now.Sub(t.start).Seconds()
}

// Set stops the running stage and starts k.
func (ts *Timers) Set(k string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	now := time.Now()
	if ts.last != "" {
		ts.toggle(ts.last, now)
	}
	ts.toggle(k, now)
	ts.last = k
}

// Stop stops the running stage.
func (ts *Timers) Stop() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.last == "" {
		return
	}
	ts.toggle(ts.last, time.Now())
	ts.last = ""
}

// Seconds returns the recorded duration of k.
func (ts *Timers) Seconds(k string) float64 {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if t, ok := ts.Timers[k]; ok {
		return t.Seconds
	}
	return 0
}

type Timer struct {
	start time.Time

	Seconds float64 `json:"seconds"`
}
