package adm

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kreyling/cragg/internal/cucumber"
	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
)

type parseReportInput struct {
	skipPassed bool
	showRepair bool
}

var parseReportArgs parseReportInput
var parseReportCmd = &cobra.Command{
	Use:     "parse-report FILE",
	Example: "cragg adm parse-report feature-overview.html",
	Short:   "Parse a saved cucumber feature overview page.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return parseReportRun(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	parseReportCmd.Flags().BoolVar(&parseReportArgs.skipPassed, "skip-passed", false, "Skip printing on stdout the passed features.")
	parseReportCmd.Flags().BoolVar(&parseReportArgs.showRepair, "show-repair", false, "Print the repaired page instead of parsing it.")
}

func parseReportRun(w io.Writer, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", file)
	}

	if parseReportArgs.showRepair {
		_, err := io.WriteString(w, cucumber.Repair(string(data)))
		return err
	}
	if cucumber.IsAbsent(string(data)) {
		fmt.Fprintf(w, "%s has no features\n", file)
		return nil
	}

	report, err := cucumber.ParseReport(string(data), jenkins.BuildReference{})
	if err != nil {
		return err
	}
	statuses := report.SortedStatuses()

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "- File: %s\n", file)
	fmt.Fprintf(w, "- Build: %s\n", report.BuildNumber)
	fmt.Fprintf(w, "- Features: %d\n", len(report.Features()))
	fmt.Fprintf(w, "- Longest failure run: %d\n", dashboard.LongestConsecutiveFailureRun(statuses))
	fmt.Fprintf(w, "- System failure: %t\n", dashboard.IsSystemFailure(statuses, dashboard.SystemFailureThreshold))

	fmt.Fprintln(w)
	for _, line := range report.Lines {
		if parseReportArgs.skipPassed && line.Status == cucumber.StatusPassed {
			continue
		}
		fmt.Fprintf(w, "%-8s %3d/%3d failed, %3d skipped  %s\n",
			line.Status, line.FailedSteps, line.TotalSteps, line.SkippedSteps, line.Feature.Name)
	}
	return nil
}
