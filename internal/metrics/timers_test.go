package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimersLaps(t *testing.T) {
	ts := NewTimers()
	ts.Set("resolve")
	time.Sleep(5 * time.Millisecond)
	ts.Set("fetch")
	time.Sleep(5 * time.Millisecond)
	ts.Stop()

	assert.Greater(t, ts.Seconds("resolve"), 0.0)
	assert.Greater(t, ts.Seconds("fetch"), 0.0)
	assert.Zero(t, ts.Seconds("aggregate"))

	ts.Stop()
	assert.Len(t, ts.Timers, 2)
}
