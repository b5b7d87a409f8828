package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/petcheck/internal/common"
)

// S3API is the subset of *s3.Client used by S3Repository.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Options configures NewS3Repository. Endpoint is optional and switches
// the client to path-style addressing for S3-compatible servers.
type S3Options struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// seams for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) S3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Repository stores each key as the object <prefix><key> in one bucket.
type S3Repository struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Repository loads AWS configuration (static credentials when given,
// the default chain otherwise) and returns a repository bound to the bucket.
func NewS3Repository(ctx context.Context, opts S3Options) (*S3Repository, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("%w: s3 bucket is required", common.ErrorInvalidInput)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3RepositoryWithClient(client, opts.Bucket, opts.Prefix), nil
}

func NewS3RepositoryWithClient(client S3API, bucket, prefix string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket, prefix: prefix}
}

func (r *S3Repository) objectKey(key string) string {
	return r.prefix + key
}

func (r *S3Repository) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get state[%s]: %w", key, err)
	}
	defer out.Body.Close()

	value, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read state[%s]: %w", key, err)
	}
	return value, nil
}

func (r *S3Repository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(key)),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to set state[%s]: %w", key, err)
	}
	return nil
}

func (r *S3Repository) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(key)),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete state[%s]: %w", key, err)
	}
	return nil
}

func (r *S3Repository) List(ctx context.Context) (map[string][]byte, error) {
	keys, err := r.keys(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := r.Get(ctx, k)
		if errors.Is(err, common.ErrorNotFound) {
			// removed between list and get
			continue
		}
		if err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, nil
}

func (r *S3Repository) Clear(ctx context.Context) error {
	keys, err := r.keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	for _, k := range keys {
		if err := r.Delete(ctx, k); err != nil {
			return fmt.Errorf("failed to clear state: %w", err)
		}
	}
	return nil
}

// keys lists state keys (without prefix) across all result pages.
func (r *S3Repository) keys(ctx context.Context) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(r.prefix),
	})

	var keys []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list state: %w", err)
		}
		for _, obj := range page.Contents {
			k := strings.TrimPrefix(aws.ToString(obj.Key), r.prefix)
			if k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys, nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
