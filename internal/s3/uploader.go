// internal/s3/uploader.go
package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"wfl-bus-finder-api-server/config"
	"wfl-bus-finder-api-server/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"
)

// PutObjectAPI is the part of *s3.Client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader archives bus snapshots to a bucket before they are wiped.
type Uploader struct {
	Client PutObjectAPI
	Bucket string
	Region string
	Prefix string

	now func() time.Time
}

func NewUploader(ctx context.Context, cfg config.S3Config) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		// Otherwise fall back to the default chain (instance role, env, shared files).
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Uploader{
		Client: s3.NewFromConfig(sdkConfig),
		Bucket: cfg.Bucket,
		Region: cfg.Region,
		Prefix: cfg.Prefix,
	}, nil
}

// snapshot is the archived document layout.
type snapshot struct {
	TakenAt time.Time    `json:"takenAt"`
	Reason  string       `json:"reason"`
	Count   int          `json:"count"`
	Buses   []models.Bus `json:"buses"`
}

// ArchiveBuses uploads buses as one JSON object and returns its URL.
func (u *Uploader) ArchiveBuses(ctx context.Context, reason string, buses []models.Bus) (string, error) {
	now := time.Now().UTC()
	if u.now != nil {
		now = u.now().UTC()
	}
	if buses == nil {
		buses = []models.Bus{}
	}

	body, err := json.Marshal(snapshot{TakenAt: now, Reason: reason, Count: len(buses), Buses: buses})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	objectKey := fmt.Sprintf("%sbuses-%s.json", u.Prefix, now.Format("20060102T150405Z"))
	_, err = u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, u.Region, objectKey), nil
}
