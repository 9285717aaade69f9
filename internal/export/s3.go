package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Paintersrp/casebook/internal/config"
)

// Uploader is satisfied by *manager.Uploader.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// NewS3Uploader builds an uploader for the backup settings. Static keys are
// used when configured, otherwise the default AWS credential chain.
func NewS3Uploader(ctx context.Context, b config.Backup) (*manager.Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(b.Region),
	}
	if b.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(b.AccessKeyID, b.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if b.Endpoint != "" {
			o.BaseEndpoint = aws.String(b.Endpoint)
			o.UsePathStyle = true
		}
	})
	return manager.NewUploader(client), nil
}

// Upload stores the snapshot under prefix and returns its location.
func Upload(ctx context.Context, u Uploader, b config.Backup, snap Snapshot) (string, error) {
	if !b.Enabled() {
		return "", fmt.Errorf("no backup bucket configured")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := path.Join(b.Prefix, FileName(snap.TakenAt))
	out, err := u.Upload(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(b.Bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(buf.Bytes()),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to s3://%s/%s: %w", b.Bucket, key, err)
	}
	if out != nil && out.Location != "" {
		return out.Location, nil
	}
	return "s3://" + b.Bucket + "/" + key, nil
}
