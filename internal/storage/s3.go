// Package storage is the blob-store adapter for option photos. There
// is exactly one upload path: spool to a local temp file, push to the
// bucket, hand back a public URL. The temp file is always removed.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"decision-matrix/internal/config"
)

const (
	deleteRetries   = 5
	deleteBaseDelay = 100 * time.Millisecond
)

type Client struct {
	s3       *s3.Client
	bucket   string
	endpoint string
}

func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: fmt.Sprintf("http://%s", cfg.MinioEndpoint),
			HostnameImmutable: true}, nil
	})
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			"")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}
	return &Client{s3: s3.NewFromConfig(awsCfg), bucket: cfg.MinioBucket, endpoint: cfg.MinioEndpoint}, nil
}

// Upload spools the payload to a temp file, stores it under a unique
// object key and returns the public URL. The temp file is deleted on
// every exit path, with a few backoff retries since a concurrent
// reader may still hold it open briefly on some platforms.
func (c *Client) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	filename = filepath.Base(filename)
	tmp, err := os.CreateTemp("", fmt.Sprintf("upload_*_%s", filename))
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	defer removeWithRetry(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, r); err != nil {
		return "", fmt.Errorf("spool %s: %w", filename, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", filename, err)
	}

	key := fmt.Sprintf("images/%s_%s", uuid.NewString(), filename)
	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        tmp,
		ContentType: aws.String(contentTypeFor(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return c.PublicURL(key), nil
}

// PublicURL is the stable retrieval URL embedded in persisted option
// records.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("http://%s/%s/%s", c.endpoint, c.bucket, key)
}

func contentTypeFor(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func removeWithRetry(path string) {
	for attempt := 0; attempt < deleteRetries; attempt++ {
		err := os.Remove(path)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			return
		}
		log.Printf("warn: attempt %d: could not delete temp file %s: %v", attempt+1, path, err)
		time.Sleep(deleteBaseDelay * time.Duration(1<<attempt))
	}
}
