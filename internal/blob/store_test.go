package blob

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowstate/internal/config"
)

// fakeS3 answers the handful of path-style S3 calls the store makes.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// path is /<bucket>/<key>
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	empty := io.NopCloser(bytes.NewReader(nil))
	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objects[key] = body
		f.types[key] = req.Header.Get("Content-Type")
		return &http.Response{StatusCode: http.StatusOK, Body: empty, Header: http.Header{"Etag": {`"etag"`}}}, nil
	case http.MethodDelete:
		delete(f.objects, key)
		return &http.Response{StatusCode: http.StatusNoContent, Body: empty, Header: http.Header{}}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Body: empty, Header: http.Header{}}, nil
}

func newTestS3(t *testing.T) (*S3Store, *fakeS3) {
	t.Helper()
	fake := newFakeS3()
	store, err := NewS3(context.Background(), config.StorageConfig{
		Bucket:    "flow-media",
		Region:    "us-east-1",
		Endpoint:  "https://s3.test.local",
		AccessKey: "AKIATEST",
		SecretKey: "SECRET",
		PathStyle: true,
		URLExpiry: 10 * time.Minute,
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.Retryer = aws.NopRetryer{}
	})
	require.NoError(t, err)
	return store, fake
}

func TestS3PutAndDelete(t *testing.T) {
	store, fake := newTestS3(t)
	ctx := context.Background()
	payload := []byte("png bytes")

	obj, err := store.Put(ctx, "users/u1/a-shot.png", bytes.NewReader(payload), PutOptions{
		ContentType: "image/png",
		Size:        int64(len(payload)),
	})
	require.NoError(t, err)
	assert.Equal(t, payload, fake.objects["users/u1/a-shot.png"])
	assert.Equal(t, "image/png", fake.types["users/u1/a-shot.png"])
	assert.Equal(t, int64(len(payload)), obj.Size)
	assert.Contains(t, obj.URL, "https://s3.test.local/flow-media/users/u1/a-shot.png")
	assert.Contains(t, obj.URL, "X-Amz-Signature=")
	assert.Contains(t, obj.URL, "X-Amz-Expires=600")

	require.NoError(t, store.Delete(ctx, "users/u1/a-shot.png"))
	assert.NotContains(t, fake.objects, "users/u1/a-shot.png")
}

func TestNewS3RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), config.StorageConfig{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemory("memory://media")
	ctx := context.Background()

	obj, err := store.Put(ctx, "users/u1/note.txt", strings.NewReader("hello"), PutOptions{ContentType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), obj.Size)
	assert.Equal(t, "memory://media/users/u1/note.txt", obj.URL)

	b, ok := store.Bytes("users/u1/note.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", string(b))

	require.NoError(t, store.Delete(ctx, "users/u1/note.txt"))
	_, err = store.URL(ctx, "users/u1/note.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenSelectsDriver(t *testing.T) {
	s, err := Open(context.Background(), config.StorageConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
