package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyJenkinsURL, "https://ci.example.com")
	v.Set(KeyJob, "view/kwb2b/job/kwb2b-tests")
	v.Set(KeyTimeout, "5s")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultBuilds, cfg.Builds)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, "https://ci.example.com/view/kwb2b/job/kwb2b-tests/", cfg.JenkinsJob().URL())
	assert.NotNil(t, cfg.Collector(nil))
}

func TestValidate(t *testing.T) {
	valid := Config{JenkinsURL: "http://ci", Job: "job/a", Builds: 1, Concurrency: 1}
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "no url", mutate: func(c *Config) { c.JenkinsURL = "" }},
		{name: "no job", mutate: func(c *Config) { c.Job = "" }},
		{name: "negative window", mutate: func(c *Config) { c.Builds = -1 }},
		{name: "no concurrency", mutate: func(c *Config) { c.Concurrency = 0 }},
	}

	assert.NoError(t, valid.Validate())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
