package aws

import (
	"bytes"
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectUploader is the minimal interface for storing objects in a bucket.
type ObjectUploader interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}

// S3Uploader implements ObjectUploader with the AWS SDK.
type S3Uploader struct {
	client *s3.Client
}

// NewS3Uploader creates a new S3-backed uploader from AWS config. Path-style
// addressing keeps bucket URLs working against LocalStack.
func NewS3Uploader(cfg sdkaws.Config) *S3Uploader {
	return &S3Uploader{
		client: s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.UsePathStyle = true
		}),
	}
}

// Upload stores data under bucket/key and returns the object location.
func (u *S3Uploader) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(bucket),
		Key:         sdkaws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}
