package dashboard

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// featurePrefix is the first word of a feature name, the part shared by
// features exercising the same subsystem.
var featurePrefix = regexp.MustCompile(`^\s*([\p{L}\p{N}]+)`)

// TagRank is the number of failed features sharing a name prefix.
type TagRank struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagRanks is ordered by count descending, then tag.
type TagRanks []TagRank

// FeatureTags counts feature names by prefix.
type FeatureTags struct {
	counts map[string]int
	total  int
}

func NewFeatureTags(names []string) *FeatureTags {
	ft := &FeatureTags{counts: make(map[string]int, len(names))}
	for _, name := range names {
		ft.Add(name)
	}
	return ft
}

// Add counts the prefix of name. Names without a word prefix only count
// toward the total.
func (ft *FeatureTags) Add(name string) {
	ft.total++
	match := featurePrefix.FindStringSubmatch(name)
	if match == nil {
		return
	}
	ft.counts[strings.ToLower(match[1])]++
}

func (ft *FeatureTags) Total() int {
	return ft.total
}

// Ranked returns the prefixes, most frequent first.
func (ft *FeatureTags) Ranked() TagRanks {
	ranks := make(TagRanks, 0, len(ft.counts))
	for tag, count := range ft.counts {
		ranks = append(ranks, TagRank{Tag: tag, Count: count})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].Tag < ranks[j].Tag
	})
	return ranks
}

// String renders the ranking, e.g. "[login=2 (66.67%)] [search=1 (33.33%)]".
func (r TagRanks) String() string {
	total := 0
	for _, rank := range r {
		total += rank.Count
	}
	parts := make([]string, 0, len(r))
	for _, rank := range r {
		parts = append(parts, fmt.Sprintf("[%s=%s]", rank.Tag, percentage(rank.Count, total)))
	}
	return strings.Join(parts, " ")
}

// percentage returns num and its share of den.
func percentage(num, den int) string {
	if den == 0 {
		return fmt.Sprintf("%d", num)
	}
	return fmt.Sprintf("%d (%.2f%%)", num, float64(num)/float64(den)*100)
}
