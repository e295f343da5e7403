package exp

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kreyling/cragg/internal/config"
	"github.com/kreyling/cragg/internal/publish"
)

// envEnablePublish must be set to use the experimental publish command.
const envEnablePublish = "CRAGG_ENABLE_EXP_PUBLISH"

type publishInput struct {
	bucket string
	region string
	prefix string
	dryRun bool
}

var argsPublish publishInput
var cmdPublish = &cobra.Command{
	Use:   "publish FILE...",
	Short: "(Experimental) Publish dashboard artifacts to S3.",
	Long:  "Experimental command to upload the files written by report --save-to to an S3 bucket. Requires " + envEnablePublish + " to be set.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := publishFiles(cmd, args); err != nil {
			log.Error(errors.Wrap(err, "could not publish dashboard"))
			os.Exit(1)
		}
	},
	Args: cobra.MinimumNArgs(1),
}

func init() {
	cmdPublish.Flags().StringVar(&argsPublish.bucket, "bucket", "", "Bucket receiving the files, defaults to publish-bucket from the configuration.")
	cmdPublish.Flags().StringVar(&argsPublish.region, "region", "", "Bucket region, defaults to publish-region from the configuration.")
	cmdPublish.Flags().StringVarP(&argsPublish.prefix, "prefix", "p", publish.DefaultPrefix, "Object key prefix.")
	cmdPublish.Flags().BoolVar(&argsPublish.dryRun, "dry-run", false, "Show the object keys without uploading.")
}

// uploaderConfig merges the flags over the configuration.
func uploaderConfig(input *publishInput) publish.UploaderConfig {
	cfg := publish.UploaderConfig{
		Bucket: viper.GetString(config.KeyPublishBucket),
		Region: viper.GetString(config.KeyPublishRegion),
		Prefix: input.prefix,
		DryRun: input.dryRun,
	}
	if input.bucket != "" {
		cfg.Bucket = input.bucket
	}
	if input.region != "" {
		cfg.Region = input.region
	}
	return cfg
}

func publishFiles(cmd *cobra.Command, files []string) error {
	if os.Getenv(envEnablePublish) == "" {
		return errors.Errorf("experimental feature disabled, set %s to enable it", envEnablePublish)
	}

	uploader, err := publish.NewUploader(uploaderConfig(&argsPublish))
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := uploader.Upload(cmd.Context(), f, map[string]string{"source": "cragg"}); err != nil {
			return err
		}
	}
	return nil
}
