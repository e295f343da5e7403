// Package config reads the settings bound by the root command from viper.
package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/kreyling/cragg/internal/dashboard"
	"github.com/kreyling/cragg/internal/jenkins"
	"github.com/kreyling/cragg/internal/publish"
)

// Keys shared by flags, environment variables (CRAGG_ prefix, dashes as
// underscores) and the config file.
const (
	KeyJenkinsURL    = "jenkins-url"
	KeyJob           = "job"
	KeyLogLevel      = "log-level"
	KeyBuilds        = "builds"
	KeyConcurrency   = "concurrency"
	KeyTimeout       = "timeout"
	KeyRetries       = "retries"
	KeyPublishBucket = "publish-bucket"
	KeyPublishRegion = "publish-region"

	DefaultBuilds        = 10
	DefaultPublishRegion = "us-east-1"
)

type Config struct {
	JenkinsURL  string
	Job         string
	Builds      int
	Concurrency int
	Timeout     time.Duration
	Retries     int

	PublishBucket string
	PublishRegion string
}

// SetDefaults registers the defaults of keys not backed by a flag.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBuilds, DefaultBuilds)
	v.SetDefault(KeyConcurrency, jenkins.DefaultConcurrency)
	v.SetDefault(KeyTimeout, jenkins.DefaultTimeout)
	v.SetDefault(KeyRetries, jenkins.DefaultRetryMax)
	v.SetDefault(KeyPublishRegion, DefaultPublishRegion)
}

// Load reads the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		JenkinsURL:    v.GetString(KeyJenkinsURL),
		Job:           v.GetString(KeyJob),
		Builds:        v.GetInt(KeyBuilds),
		Concurrency:   v.GetInt(KeyConcurrency),
		Timeout:       v.GetDuration(KeyTimeout),
		Retries:       v.GetInt(KeyRetries),
		PublishBucket: v.GetString(KeyPublishBucket),
		PublishRegion: v.GetString(KeyPublishRegion),
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings needed to reach the CI server.
func (c *Config) Validate() error {
	switch {
	case c.JenkinsURL == "":
		return errors.Errorf("missing %s", KeyJenkinsURL)
	case c.Job == "":
		return errors.Errorf("missing %s", KeyJob)
	case c.Builds < 0:
		return errors.Errorf("%s must not be negative, got %d", KeyBuilds, c.Builds)
	case c.Concurrency < 1:
		return errors.Errorf("%s must be at least 1, got %d", KeyConcurrency, c.Concurrency)
	}
	return nil
}

func (c *Config) JenkinsJob() jenkins.Job {
	return jenkins.NewJob(c.JenkinsURL, c.Job)
}

func (c *Config) Client() *jenkins.Client {
	return jenkins.NewClient(jenkins.ClientOptions{
		Timeout:     c.Timeout,
		RetryMax:    c.Retries,
		Concurrency: int64(c.Concurrency),
	})
}

// Collector returns a dashboard collector using f, or a new Client when f
// is nil.
func (c *Config) Collector(f jenkins.Fetcher) *dashboard.Collector {
	if f == nil {
		f = c.Client()
	}
	return dashboard.NewCollector(f, c.JenkinsJob(), c.Builds)
}

func (c *Config) Uploader(dryRun bool) (*publish.Uploader, error) {
	return publish.NewUploader(publish.UploaderConfig{
		Bucket: c.PublishBucket,
		Region: c.PublishRegion,
		DryRun: dryRun,
	})
}
