package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"event-registry/core/config"
	"event-registry/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver stores the raw bytes of a processed import file.
type Archiver interface {
	Archive(ctx context.Context, filename string, data []byte)
}

// S3Archiver keeps raw import files in an S3-compatible bucket so a bad
// import can be replayed or inspected later. Archiving is best-effort: a
// failed upload is logged, never surfaced to the import caller.
type S3Archiver struct {
	client *s3.Client
	bucket string
}

// NewS3Archiver builds an archiver from config. Returns a disabled archiver
// when no bucket is configured.
func NewS3Archiver(cfg config.S3Config) *S3Archiver {
	if cfg.Bucket == "" {
		return &S3Archiver{}
	}

	var base *string
	if cfg.Endpoint != "" {
		base = aws.String(cfg.Endpoint)
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: base,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})
	return &S3Archiver{client: client, bucket: cfg.Bucket}
}

// Archive uploads the file under a timestamped key.
func (a *S3Archiver) Archive(ctx context.Context, filename string, data []byte) {
	if a.client == nil {
		return
	}

	key := fmt.Sprintf("imports/%s-%s", time.Now().UTC().Format("20060102T150405"), filename)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		logger.Error("S3Archiver:Archive", err)
		return
	}
	logger.Info("S3Archiver:Archive", "key", key, "bytes", len(data))
}
