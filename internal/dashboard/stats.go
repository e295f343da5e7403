package dashboard

import (
	"github.com/montanaflynn/stats"

	"github.com/kreyling/cragg/internal/jenkins"
)

// DurationStats summarizes the durations of the builds in the window, in
// seconds. Missing builds are ignored.
type DurationStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// NewDurationStats returns nil when no build has a known duration.
func NewDurationStats(builds []*jenkins.Build) *DurationStats {
	data := stats.Float64Data{}
	for _, b := range builds {
		if b == nil || b.Missing {
			continue
		}
		data = append(data, b.Duration.Seconds())
	}
	if data.Len() == 0 {
		return nil
	}

	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	p90, _ := stats.Percentile(data, 90)

	return &DurationStats{
		Count:  data.Len(),
		Min:    min,
		Mean:   mean,
		Median: median,
		P90:    p90,
		Max:    max,
	}
}
