package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/google/uuid"
)

type S3StoreConfig struct {
	// Endpoint пустой для AWS; для R2/MinIO - полный URL
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
}

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store загружает скриншоты в S3-совместимый бакет; в БД пишется только ключ объекта
type S3Store struct {
	client        objectAPI
	bucket        string
	publicBaseURL string
	newKey        func() string
}

func NewS3Store(ctx context.Context, cfg S3StoreConfig) (*S3Store, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("invalid S3 configuration: bucket and credentials are required")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Store(client, cfg.Bucket, cfg.PublicBaseURL), nil
}

func newS3Store(client objectAPI, bucket, publicBaseURL string) *S3Store {
	return &S3Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		newKey:        uuid.NewString,
	}
}

func (s *S3Store) Save(ctx context.Context, teamID int64, shot *Screenshot) (string, error) {
	if len(shot.Data) == 0 {
		return "", domain.NewInvalidScreenshotError("file must be an image")
	}

	key := fmt.Sprintf("payments/%d/%s%s", teamID, s.newKey(), shot.Extension())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(shot.Data),
		ContentType:   aws.String(shot.ContentType),
		ContentLength: aws.Int64(int64(len(shot.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload screenshot (key: %s): %w", key, err)
	}

	return key, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("failed to delete screenshot (key: %s): %w", ref, err)
	}
	return nil
}

func (s *S3Store) PublicURL(ref string) string {
	if s.publicBaseURL == "" || ref == "" {
		return ""
	}

	full, err := url.JoinPath(s.publicBaseURL, strings.TrimPrefix(ref, "/"))
	if err != nil {
		return ""
	}
	return full
}
