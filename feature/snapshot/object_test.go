package snapshot

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"catalog-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObjectStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "snaps", "feeds/lipseys/global.txt", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader("upc,cost\n1,2\n")), nil)

		got, err := NewObjectStore(m, "snaps", "/feeds/").Load(ctx, "lipseys/global")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "upc,cost\n1,2\n", *got)
	})

	t.Run("MissingOnRead", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "snaps", "feeds/lipseys/global.txt", mock.Anything).
			Return(io.NopCloser(iotest.ErrReader(minio.ErrorResponse{Code: "NoSuchKey"})), nil)

		got, err := NewObjectStore(m, "snaps", "feeds").Load(ctx, "lipseys/global")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Failure", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "snaps", "feeds/lipseys/global.txt", mock.Anything).
			Return(nil, fmt.Errorf("connection reset"))

		_, err := NewObjectStore(m, "snaps", "feeds").Load(ctx, "lipseys/global")
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("InvalidKey", func(t *testing.T) {
		m := new(mocks.Client)
		_, err := NewObjectStore(m, "snaps", "feeds").Load(ctx, "../secrets")
		assert.Error(t, err)
		m.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestObjectStore_Save(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("PutObject", ctx, "snaps", "feeds/davidsons/company-3.txt", mock.Anything, int64(5), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := NewObjectStore(m, "snaps", "feeds").Save(ctx, "davidsons/company-3", "hello")
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestObjectStore_Delete(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("RemoveObject", ctx, "snaps", "lipseys/global.txt", minio.RemoveObjectOptions{}).
		Return(minio.ErrorResponse{Code: "NoSuchKey"})

	assert.NoError(t, NewObjectStore(m, "snaps", "").Delete(ctx, "lipseys/global"))
}

func TestObjectStore_List(t *testing.T) {
	ctx := context.Background()
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "feeds/lipseys/global.txt"}
	ch <- minio.ObjectInfo{Key: "feeds/davidsons/company-3.txt"}
	ch <- minio.ObjectInfo{Key: "feeds/stray.txt"}
	close(ch)

	m := new(mocks.Client)
	m.On("ListObjects", ctx, "snaps", minio.ListObjectsOptions{Prefix: "feeds/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	keys, err := NewObjectStore(m, "snaps", "feeds").List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lipseys/global", "davidsons/company-3"}, keys)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "lipseys/global", Key(" Lipseys ", "global"))
}
