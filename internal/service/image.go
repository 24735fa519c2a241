package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/pageza/tomato/backend/config"
)

// ImageUpload is an image file received with a recipe
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// uploadName builds the stored name <unix millis>-<original base name>
func uploadName(now time.Time, original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}

// LocalImageStore writes images to a directory served under a URL prefix
type LocalImageStore struct {
	dir    string
	prefix string
	now    func() time.Time
	log    *logrus.Logger
}

// NewLocalImageStore creates the upload directory if needed
func NewLocalImageStore(dir, prefix string, log *logrus.Logger) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalImageStore{
		dir:    dir,
		prefix: "/" + strings.Trim(prefix, "/"),
		now:    time.Now,
		log:    log,
	}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	name := uploadName(s.now(), filename)
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	ref := path.Join(s.prefix, name)
	s.log.WithField("image", ref).Debug("Stored recipe image")
	return ref, nil
}

// Remove deletes a stored image. References outside the prefix are ignored.
func (s *LocalImageStore) Remove(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, s.prefix+"/") {
		return nil
	}
	name := path.Base(ref)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}

// S3API is the part of the S3 client used by S3ImageStore
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3ImageStore uploads images to an S3 bucket under recipes/
type S3ImageStore struct {
	client  S3API
	bucket  string
	baseURL string
	now     func() time.Time
	log     *logrus.Logger
}

// NewS3ImageStore wraps the configured bucket
func NewS3ImageStore(cfg *config.S3Config, log *logrus.Logger) *S3ImageStore {
	return newS3ImageStore(cfg.Client, cfg.BucketName, cfg.BaseURL, log)
}

func newS3ImageStore(client S3API, bucket, baseURL string, log *logrus.Logger) *S3ImageStore {
	return &S3ImageStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		log:     log,
	}
}

func (s *S3ImageStore) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := "recipes/" + uploadName(s.now(), filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.baseURL + "/" + key
	s.log.WithField("image", url).Info("Uploaded recipe image to S3")
	return url, nil
}

func (s *S3ImageStore) Remove(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, s.baseURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(ref, s.baseURL+"/")
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
