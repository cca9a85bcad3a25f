package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	infraconfig "github.com/crm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// S3ReportSink writes every job output line as its own object under
// {prefix}/{stream}/{timestamp}.log. It works with any S3-compatible backend
// (AWS S3, MinIO, RustFS).
type S3ReportSink struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// S3ReportSinkOption is a functional option for configuring S3ReportSink
type S3ReportSinkOption func(*S3ReportSink)

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) S3ReportSinkOption {
	return func(s *S3ReportSink) {
		s.logger = logger
	}
}

// WithClock overrides the time source used for object keys
func WithClock(now func() time.Time) S3ReportSinkOption {
	return func(s *S3ReportSink) {
		s.now = now
	}
}

// NewS3ReportSink creates a sink from configuration
func NewS3ReportSink(ctx context.Context, cfg *infraconfig.S3Config, opts ...S3ReportSinkOption) (*S3ReportSink, error) {
	if cfg == nil {
		return nil, errors.New("s3 configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	var endpoint string
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid s3 endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	sink := &S3ReportSink{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(sink)
	}
	return sink, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *S3ReportSink) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating report bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Key returns the object key for a line written to stream at t
func (s *S3ReportSink) Key(stream string, t time.Time) string {
	name := stream + "/" + t.UTC().Format("20060102T150405.000000000Z") + ".log"
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Append uploads line as a new object
func (s *S3ReportSink) Append(ctx context.Context, stream, line string) error {
	if err := validStream(stream); err != nil {
		return err
	}

	key := s.Key(stream, s.now())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(line + "\n"),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report line: %w", err)
	}

	s.logger.Debug("Report line uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
	)
	return nil
}

// Bucket returns the bucket name
func (s *S3ReportSink) Bucket() string {
	return s.bucket
}
