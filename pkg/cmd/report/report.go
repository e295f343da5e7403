package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/kreyling/cragg/internal/assets"
	"github.com/kreyling/cragg/internal/config"
	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
	"github.com/kreyling/cragg/internal/publish"
	"github.com/kreyling/cragg/internal/render"
)

const (
	FileNameJSON    = "cragg-dashboard.json"
	FileNameHTML    = "cragg-dashboard.html"
	FileNameSheet   = "cragg-dashboard.xlsx"
	FileNameChart   = "cragg-chart.html"
	FileNameArchive = "cragg-dashboard" + publish.ArchiveExtension
)

type Input struct {
	saveTo  string
	verbose bool
	json    bool
	yaml    bool
}

func NewCmdReport() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Collect the dashboard of the configured job and print it.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := processReport(cmd.Context(), &data); err != nil {
				log.Error(errors.Wrap(err, "could not create dashboard"))
				os.Exit(1)
			}
		},
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringVarP(
		&data.saveTo, "save-to", "s", "",
		"Save the dashboard as JSON, HTML, spreadsheet, chart and archive to a directory. Example: -s ./results",
	)
	cmd.Flags().BoolVarP(
		&data.verbose, "verbose", "v", false,
		"Show build provenance and failure tags",
	)
	cmd.Flags().BoolVarP(
		&data.json, "json", "", false,
		"Show dashboard in json format",
	)
	cmd.Flags().BoolVarP(
		&data.yaml, "yaml", "", false,
		"Show dashboard in yaml format",
	)

	return cmd
}

// processReport collects the dashboard, saves it when requested and shows it.
func processReport(ctx context.Context, input *Input) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log.Info("Collecting dashboard...")
	d, err := cfg.Collector(nil).Collect(ctx)
	if err != nil {
		return err
	}

	if input.saveTo != "" {
		tmpl, err := assets.ReadFile(assets.DashboardTemplate)
		if err != nil {
			return err
		}
		files, err := SaveResults(input.saveTo, tmpl, d, cfg.JenkinsJob())
		if err != nil {
			return err
		}
		for _, f := range files {
			log.Infof("Saved %s", f)
		}
	}

	return Show(os.Stdout, input, d)
}

// Show writes d in the format selected by input.
func Show(w io.Writer, input *Input, d *dashboard.Dashboard) error {
	switch {
	case input.json:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return errors.Wrap(err, "unable to encode dashboard")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case input.yaml:
		data, err := toYAML(d)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	render.Table(w, d)
	if input.verbose {
		render.Builds(w, d)
	}
	return nil
}

// toYAML converts through JSON so the field names match the JSON output.
func toYAML(d *dashboard.Dashboard) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode dashboard")
	}
	doc := yaml.MapSlice{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unable to convert dashboard")
	}
	out, err := yaml.Marshal(doc)
	return out, errors.Wrap(err, "unable to encode dashboard as yaml")
}

// SaveResults writes every artifact of d to dir and returns the file paths.
func SaveResults(dir string, tmpl []byte, d *dashboard.Dashboard, job jenkins.Job) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create %s", dir)
	}
	path := func(name string) string { return filepath.Join(dir, name) }

	data, err := json.MarshalIndent(d, "", " ")
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode dashboard")
	}
	if err := os.WriteFile(path(FileNameJSON), data, 0644); err != nil {
		return nil, errors.Wrapf(err, "unable to write %s", FileNameJSON)
	}

	var page bytes.Buffer
	if err := render.HTML(&page, tmpl, d, job); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path(FileNameHTML), page.Bytes(), 0644); err != nil {
		return nil, errors.Wrapf(err, "unable to write %s", FileNameHTML)
	}

	if err := render.Sheet(path(FileNameSheet), d); err != nil {
		return nil, err
	}

	var chart bytes.Buffer
	if err := render.Chart(&chart, d); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path(FileNameChart), chart.Bytes(), 0644); err != nil {
		return nil, errors.Wrapf(err, "unable to write %s", FileNameChart)
	}

	if err := publish.SaveArchive(path(FileNameArchive), d); err != nil {
		return nil, err
	}

	return []string{
		path(FileNameJSON),
		path(FileNameHTML),
		path(FileNameSheet),
		path(FileNameChart),
		path(FileNameArchive),
	}, nil
}
