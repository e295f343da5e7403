package adm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kreyling/cragg/internal/jenkins"
)

type parseBuildInput struct {
	number string
}

var parseBuildArgs parseBuildInput
var parseBuildCmd = &cobra.Command{
	Use:     "parse-build FILE",
	Example: "cragg adm parse-build api.xml --number 1322",
	Short:   "Parse a saved build metadata document (api/xml).",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return parseBuildRun(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	parseBuildCmd.Flags().StringVar(&parseBuildArgs.number, "number", "", "Build number reported in errors.")
}

func parseBuildRun(w io.Writer, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", file)
	}

	res := &jenkins.Response{URL: file, StatusCode: 200, Body: string(data)}
	if jenkins.IsBuildNotFound(res) {
		fmt.Fprintf(w, "%s is a build not found page\n", file)
		return nil
	}

	build, err := jenkins.ParseBuildInfo(res.Body, jenkins.BuildReference{Number: parseBuildArgs.number})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Build:")
	fmt.Fprintf(w, "- Started at: %s\n", build.StartedAt)
	fmt.Fprintf(w, "- Duration: %s\n", build.Duration)
	fmt.Fprintf(w, "- Started by: %s\n", build.StartedBy())
	fmt.Fprintf(w, "\n#> Upstream builds (%d):\n", len(build.UpstreamReferences))
	for _, up := range build.UpstreamReferences {
		fmt.Fprintf(w, "%s%s\n", up.JobPath, up.Number)
	}
	fmt.Fprintf(w, "\n#> SCM changes (%d):\n", len(build.ScmChanges))
	for _, change := range build.ScmChanges {
		fmt.Fprintf(w, "%s %s: %s\n", change.CommitID, change.User, change.Heading())
		if details := change.Details(); len(details) > 0 {
			fmt.Fprintf(w, "  - %s\n", strings.Join(details, "\n  - "))
		}
	}
	return nil
}
