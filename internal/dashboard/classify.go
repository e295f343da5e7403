package dashboard

import "github.com/kreyling/cragg/internal/cucumber"

// SystemFailureThreshold is the share of features a single run of
// consecutive failures, in feature name order, must exceed for a build to be
// flagged as a system failure.
const SystemFailureThreshold = 0.15

// LongestConsecutiveFailureRun returns the length of the longest run of
// consecutive failed statuses.
func LongestConsecutiveFailureRun(statuses []string) int {
	longest, current := 0, 0
	for _, status := range statuses {
		if status != cucumber.StatusFailed {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}

// IsSystemFailure reports if the longest failure run of statuses, sorted by
// feature name, covers more than threshold of all statuses. Failures of
// features sharing a name prefix cluster together, which points to a broken
// environment rather than independent regressions.
func IsSystemFailure(statuses []string, threshold float64) bool {
	if len(statuses) == 0 {
		return false
	}
	return float64(LongestConsecutiveFailureRun(statuses))/float64(len(statuses)) > threshold
}
