package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/tomato/backend/internal/logging"
)

// recordingImageStore remembers saved and removed references
type recordingImageStore struct {
	saved   []string
	removed []string
}

func (s *recordingImageStore) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	ref := "/uploads/" + filename
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *recordingImageStore) Remove(ctx context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUploadName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "1700000000123-soup.jpg", uploadName(now, "soup.jpg"))
	assert.Equal(t, "1700000000123-my_soup__1_.png", uploadName(now, "my soup (1).png"))
	assert.Equal(t, "1700000000123-passwd", uploadName(now, "../../etc/passwd"))
	assert.Equal(t, "1700000000123-photo.jpg", uploadName(now, `C:\Users\me\photo.jpg`))
	assert.Equal(t, "1700000000123-image", uploadName(now, ""))
}

func TestLocalImageStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(filepath.Join(dir, "uploads"), "uploads/", logging.Discard())
	require.NoError(t, err)
	store.now = func() time.Time { return time.UnixMilli(42) }

	ctx := context.Background()
	ref, err := store.Save(ctx, "soup.jpg", "image/jpeg", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/42-soup.jpg", ref)

	path := filepath.Join(dir, "uploads", "42-soup.jpg")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))

	// Same name in the same millisecond does not overwrite
	_, err = store.Save(ctx, "soup.jpg", "image/jpeg", strings.NewReader("other"))
	assert.Error(t, err)

	require.NoError(t, store.Remove(ctx, ref))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(ctx, ref), "removing twice is harmless")
	assert.NoError(t, store.Remove(ctx, "https://example.com/elsewhere.jpg"))
}

func TestS3ImageStoreSave(t *testing.T) {
	client := new(mockS3)
	store := newS3ImageStore(client, "tomato-images", "https://cdn.example.com/", logging.Discard())
	store.now = func() time.Time { return time.UnixMilli(7) }

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "tomato-images" &&
			aws.ToString(in.Key) == "recipes/7-soup.jpg" &&
			aws.ToString(in.ContentType) == "image/jpeg"
	})).Return(&s3.PutObjectOutput{}, nil)

	ref, err := store.Save(context.Background(), "soup.jpg", "image/jpeg", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/recipes/7-soup.jpg", ref)
	client.AssertExpectations(t)
}

func TestS3ImageStoreSaveFailure(t *testing.T) {
	client := new(mockS3)
	store := newS3ImageStore(client, "tomato-images", "https://cdn.example.com", logging.Discard())
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := store.Save(context.Background(), "soup.jpg", "", strings.NewReader("bytes"))
	assert.ErrorContains(t, err, "access denied")
}

func TestS3ImageStoreRemove(t *testing.T) {
	client := new(mockS3)
	store := newS3ImageStore(client, "tomato-images", "https://cdn.example.com", logging.Discard())

	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "recipes/7-soup.jpg"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	ctx := context.Background()
	require.NoError(t, store.Remove(ctx, "https://cdn.example.com/recipes/7-soup.jpg"))
	require.NoError(t, store.Remove(ctx, "/uploads/local.jpg"))
	client.AssertExpectations(t)
}
