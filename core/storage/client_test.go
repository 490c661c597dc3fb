package storage_test

import (
	"context"
	"fmt"
	"testing"

	"catalog-reconciler/core/storage"
	"catalog-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "catalog-snapshots",
			Region:    "us-east-1",
		})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
		})
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "snaps").Return(true, nil)
		assert.NoError(t, storage.EnsureBucket(ctx, m, "snaps", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "snaps").Return(false, nil)
		m.On("MakeBucket", ctx, "snaps", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)
		assert.NoError(t, storage.EnsureBucket(ctx, m, "snaps", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "snaps").Return(false, fmt.Errorf("access denied"))
		assert.ErrorContains(t, storage.EnsureBucket(ctx, m, "snaps", ""), "access denied")
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, storage.IsNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, storage.IsNotFound(fmt.Errorf("wrapped: %w", minio.ErrorResponse{Code: "NoSuchBucket"})))
	assert.False(t, storage.IsNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, storage.IsNotFound(nil))
}
