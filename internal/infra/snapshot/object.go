package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

// ObjectConfig configures the S3-compatible rich storage backend. The
// tier is considered configured only when endpoint, credentials and
// bucket are all present.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

func (c ObjectConfig) configured() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// objectStore writes content-addressed snapshots to an S3-compatible
// bucket. Objects are keyed by the payload fingerprint so re-persisting
// identical content is idempotent.
type objectStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

func newObjectStore(cfg ObjectConfig, logger *slog.Logger) (*objectStore, error) {
	endpoint := sanitizeEndpoint(cfg.Endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(cfg.Endpoint), "https")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &objectStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *objectStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

// put uploads the snapshot and returns the object URI.
func (s *objectStore) put(ctx context.Context, payload calendar.RawPayload, attestation calendar.Attestation) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	key := "calendars/" + payload.ContentHash + ".ics"
	data := []byte(payload.ICSBody)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/calendar",
		UserMetadata: map[string]string{
			"attestation-digest":   attestation.Digest,
			"attestation-provider": string(attestation.Provider),
			"source-id":            payload.Source.ID,
		},
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// sanitizeEndpoint strips schemes and paths to satisfy minio.New.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
