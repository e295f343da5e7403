package exp

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestUploaderConfig(t *testing.T) {
	viper.Set("publish-bucket", "from-config")
	viper.Set("publish-region", "eu-west-1")
	defer viper.Reset()

	cfg := uploaderConfig(&publishInput{prefix: "nightly/"})
	assert.Equal(t, "from-config", cfg.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "nightly/", cfg.Prefix)

	cfg = uploaderConfig(&publishInput{bucket: "override", region: "us-west-2", dryRun: true})
	assert.Equal(t, "override", cfg.Bucket)
	assert.Equal(t, "us-west-2", cfg.Region)
	assert.True(t, cfg.DryRun)
}

func TestPublishDisabled(t *testing.T) {
	t.Setenv(envEnablePublish, "")
	err := publishFiles(cmdPublish, []string{"cragg-dashboard.json.xz"})
	assert.ErrorContains(t, err, envEnablePublish)
}
