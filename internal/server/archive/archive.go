// Package archive copies rendered reels to S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/personadesk/internal/common"
)

// Archiver stores one video and returns its object key.
type Archiver interface {
	Store(ctx context.Context, data []byte) (string, error)
}

// Options configures the S3 client.
type Options struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archiver struct {
	bucket string
	client putter
	now    func() time.Time
}

// NewS3Archiver builds a client for opts. Static credentials are used when
// an access key is set, otherwise the default AWS credential chain applies.
// A custom endpoint switches to path-style addressing.
func NewS3Archiver(ctx context.Context, opts Options) (*S3Archiver, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{bucket: opts.Bucket, client: client, now: time.Now}, nil
}

// ObjectKey is reels/YYYY/MM/DD/<uuid>.mp4 for t.
func ObjectKey(t time.Time) string {
	return fmt.Sprintf("reels/%04d/%02d/%02d/%s.mp4", t.Year(), int(t.Month()), t.Day(), uuid.New())
}

func (a *S3Archiver) Store(ctx context.Context, data []byte) (string, error) {
	key := ObjectKey(a.now().UTC())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(common.VideoContentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}
