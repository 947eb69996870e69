package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"alcyxob/hoops-trainer/internal/config"
	"alcyxob/hoops-trainer/internal/logger"
	"alcyxob/hoops-trainer/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3SlotStore implements repository.SlotStore with one object per slot.
type s3SlotStore struct {
	client     *s3.Client
	bucketName string
	prefix     string
}

var _ repository.SlotStore = (*s3SlotStore)(nil)

// NewS3SlotStore creates a SlotStore on an S3-compatible bucket.
func NewS3SlotStore(ctx context.Context, cfg config.S3Config) (repository.SlotStore, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("s3 bucket name is required")
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx,
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS SDK config for S3")
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
		}
		// Path-style addressing is required by MinIO and most S3-compatible services
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	logger.Info().
		Str("endpoint", cfg.Endpoint).
		Str("bucket", cfg.BucketName).
		Str("prefix", cfg.Prefix).
		Msg("S3 slot store initialized")

	return &s3SlotStore{
		client:     s3Client,
		bucketName: cfg.BucketName,
		prefix:     cfg.Prefix,
	}, nil
}

// endpointURL adds a scheme to bare host:port endpoints.
func endpointURL(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

func (s *s3SlotStore) objectKey(key string) string {
	return s.prefix + key + ".json"
}

func (s *s3SlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return "", false, nil
		}
		return "", false, err
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, err
	}
	return string(body), true, nil
}

func (s *s3SlotStore) Set(ctx context.Context, key, value string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.objectKey(key)),
		Body:        strings.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("%w: slot %q: %v", repository.ErrWriteFailed, key, err)
	}
	return nil
}
