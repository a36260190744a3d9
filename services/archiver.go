package services

import (
	"context"
	"path"

	"go.uber.org/zap"

	aws_pkg "github.com/trcsocial/shopify-csv-uploader/pkg/aws"
)

// BundleArchiver stores finished export bundles for later retrieval.
type BundleArchiver interface {
	Archive(ctx context.Context, runID string, zipBytes []byte) (string, error)
}

// S3BundleArchiver uploads bundles to an S3 bucket under a key prefix.
type S3BundleArchiver struct {
	uploader aws_pkg.ObjectUploader
	bucket   string
	prefix   string
}

func NewS3BundleArchiver(uploader aws_pkg.ObjectUploader, bucket, prefix string) *S3BundleArchiver {
	return &S3BundleArchiver{
		uploader: uploader,
		bucket:   bucket,
		prefix:   prefix,
	}
}

// Archive stores one run's ZIP and returns its storage location.
func (a *S3BundleArchiver) Archive(ctx context.Context, runID string, zipBytes []byte) (string, error) {
	key := path.Join(a.prefix, runID+".zip")
	location, err := a.uploader.Upload(ctx, a.bucket, key, zipBytes, "application/zip")
	if err != nil {
		return "", err
	}

	zap.L().Info("Export bundle archived",
		zap.String("run_id", runID),
		zap.String("location", location),
	)
	return location, nil
}
