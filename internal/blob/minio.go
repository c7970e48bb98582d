package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// Accept either "minio:9000" or "http://minio:9000" / "https://minio:9000".
func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}
	return raw, false, nil
}

func NewMinioStore(ctx context.Context, rawEndpoint, accessKey, secretKey, bucket string) (*MinioStore, error) {
	if rawEndpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("object store configuration incomplete")
	}
	endpoint, secure, err := normaliseEndpoint(rawEndpoint)
	if err != nil {
		return nil, err
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("bucket does not exist: %s", bucket)
	}
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return &MinioStore{
		client:  client,
		bucket:  bucket,
		baseURL: scheme + "://" + endpoint + "/" + bucket,
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, r io.Reader, size int64, contentType, folder, filename string) (*Object, error) {
	key := path.Join(folder, uuid.New().String()+strings.ToLower(path.Ext(filename)))
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}
	return &Object{Key: key, URL: s.baseURL + "/" + key}, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
