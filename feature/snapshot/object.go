package snapshot

import (
	"context"
	"fmt"
	"io"
	"strings"

	"catalog-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps snapshots in an S3 compatible bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates an ObjectStore.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Load implements Store.
func (s *ObjectStore) Load(ctx context.Context, key string) (*string, error) {
	name, err := objectPath(s.prefix, key)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}

	content := string(data)
	return &content, nil
}

// Save implements Store.
func (s *ObjectStore) Save(ctx context.Context, key, content string) error {
	name, err := objectPath(s.prefix, key)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, strings.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("put snapshot %s: %w", name, err)
	}
	return nil
}

// Delete implements Store.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	name, err := objectPath(s.prefix, key)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil && !storage.IsNotFound(err) {
		return fmt.Errorf("remove snapshot %s: %w", name, err)
	}
	return nil
}

// List returns the keys of every stored snapshot.
func (s *ObjectStore) List(ctx context.Context) ([]string, error) {
	prefix := s.prefix
	if prefix != "" {
		prefix += "/"
	}

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list snapshots: %w", obj.Err)
		}
		key := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), ".txt")
		if strings.Count(key, "/") == 1 {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
