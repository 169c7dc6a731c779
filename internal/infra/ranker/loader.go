package ranker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const s3Scheme = "s3://"

// S3Config addresses an S3-compatible object store (R2, MinIO, AWS).
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
}

// Load reads the artifact from a local path or an s3://bucket/key URI.
func Load(ctx context.Context, path string, s3 S3Config, logger *slog.Logger) (*Model, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("ranking model path is empty")
	}
	logger = logger.With("component", "ranker.loader", "path", path)

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(path, s3Scheme) {
		data, err = fetchObject(ctx, path, s3)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read ranking model: %w", err)
	}

	model, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Info("ranking model loaded", "schema", model.Schema(), "layers", len(model.layers), "bytes", len(data))
	return model, nil
}

func fetchObject(ctx context.Context, uri string, cfg S3Config) ([]byte, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return nil, err
	}
	endpoint := sanitizeEndpoint(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required for %s", uri)
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://"),
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	if _, err := obj.Stat(); err != nil {
		return nil, err
	}
	return io.ReadAll(obj)
}

func parseS3URI(uri string) (string, string, error) {
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || strings.Trim(key, "/") == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q, want s3://bucket/key", uri)
	}
	return bucket, key, nil
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	host, _, _ := strings.Cut(raw, "/")
	return host
}
