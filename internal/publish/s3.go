package publish

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultPrefix is the object key prefix of uploaded artifacts.
const DefaultPrefix = "dashboards/"

// UploaderConfig selects the bucket receiving the artifacts.
type UploaderConfig struct {
	Bucket string
	Region string
	Prefix string
	DryRun bool
}

// Uploader publishes dashboard artifacts to S3.
type Uploader struct {
	config   UploaderConfig
	svc      *s3.S3
	uploader *s3manager.Uploader
}

// NewUploader creates the S3 clients of the configured region.
func NewUploader(cfg UploaderConfig) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("no bucket configured")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create AWS session")
	}
	return &Uploader{
		config:   cfg,
		svc:      s3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// ObjectKey returns the key the file at path is uploaded to.
func ObjectKey(prefix, path string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return strings.TrimSuffix(prefix, "/") + "/" + filepath.Base(path)
}

// checkBucket fails when the bucket is missing or not accessible.
func (u *Uploader) checkBucket(ctx context.Context) error {
	_, err := u.svc.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(u.config.Bucket),
	})
	return errors.Wrapf(err, "unable to access bucket %s", u.config.Bucket)
}

// Upload publishes the file at path and returns its S3 URI.
func (u *Uploader) Upload(ctx context.Context, path string, meta map[string]string) (string, error) {
	key := ObjectKey(u.config.Prefix, path)
	uri := "s3://" + u.config.Bucket + "/" + key
	if u.config.DryRun {
		log.Warnf("DRY-RUN mode: skipping upload of %s to %s", path, uri)
		return uri, nil
	}

	if err := u.checkBucket(ctx); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	log.Debugf("Uploading %s to %s", path, uri)
	_, err = u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:   aws.String(u.config.Bucket),
		Key:      aws.String(key),
		Metadata: aws.StringMap(meta),
		Body:     f,
	})
	if err != nil {
		return "", errors.Wrapf(err, "unable to upload %s to bucket %s", path, u.config.Bucket)
	}
	log.Infof("Published %s", uri)
	return uri, nil
}
