package cucumber

import (
	"regexp"
	"strings"
)

type repairRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// repairRules patch the invalid fragments emitted by the report generator.
var repairRules = []repairRule{
	// unclosed container opening tag on its own line
	{
		pattern:     regexp.MustCompile(`^(\s*)<div class="container-fluid"(\s*)$`),
		replacement: `${1}<div class="container-fluid">${2}`,
	},
	// carousel controls missing the end of the opening anchor tag
	{
		pattern:     regexp.MustCompile(`data-slide="(prev|next)"</a>`),
		replacement: `data-slide="${1}"></a>`,
	},
	{
		pattern:     regexp.MustCompile(`<br>`),
		replacement: `<br/>`,
	},
}

// Repair fixes the known broken fragments of a report page line by line.
// Lines without a broken fragment are returned unchanged, so repairing an
// already repaired page is a no-op.
func Repair(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = repairLine(line)
	}
	return strings.Join(lines, "\n")
}

func repairLine(line string) string {
	for _, rule := range repairRules {
		line = rule.pattern.ReplaceAllString(line, rule.replacement)
	}
	return line
}
