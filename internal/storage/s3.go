package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Options locates an S3-compatible bucket
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
}

// S3Service publishes generated datasets to S3-compatible storage.
type S3Service struct {
	client *minio.Client
	bucket string
	region string
}

// NewS3Service creates the client. No request is made until the first call.
func NewS3Service(opts S3Options) (*S3Service, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, errors.New("missing one or more required settings: S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY")
	}
	if opts.Bucket == "" {
		return nil, errors.New("missing S3_BUCKET")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Println("Using S3 endpoint:", opts.Endpoint)
	return &S3Service{client: client, bucket: opts.Bucket, region: opts.Region}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	log.Printf("Created bucket %s", s.bucket)
	return nil
}

// UploadFile stores the local file under prefix/<file name>, overwriting
// any previous version. It returns the object key.
func (s *S3Service) UploadFile(ctx context.Context, prefix, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", localPath, err)
	}

	key := ObjectKey(prefix, localPath)
	_, err = s.client.PutObject(ctx, s.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(localPath),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("Stored %s in bucket '%s' with key '%s'", localPath, s.bucket, key)
	return key, nil
}

// Publish uploads every existing file in paths. Missing files are skipped.
func (s *S3Service) Publish(ctx context.Context, prefix string, paths ...string) ([]string, error) {
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	var keys []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			log.Printf("Skipping %s: not generated", p)
			continue
		}
		key, err := s.UploadFile(ctx, prefix, p)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// ObjectKey builds prefix/<base name> with a sanitized prefix
func ObjectKey(prefix, localPath string) string {
	return path.Join(sanitizeKey(prefix), filepath.Base(localPath))
}

// sanitizeKey lowercases and replaces spaces with hyphens
func sanitizeKey(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	return strings.ToLower(s)
}

func contentType(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".geojson":
		return "application/geo+json"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
