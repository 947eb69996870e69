package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/hoops-trainer/internal/config"
)

// fakeS3 serves path-style GetObject and PutObject from memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = string(body)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		v, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
				`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, v)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3(t *testing.T) (*fakeS3, config.S3Config) {
	t.Helper()
	fake := &fakeS3{objects: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return fake, config.S3Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		BucketName:      "hoops",
		Prefix:          "slots/",
	}
}

func TestS3SlotStore_GetSet(t *testing.T) {
	ctx := context.Background()
	fake, cfg := newTestS3(t)

	store, err := NewS3SlotStore(ctx, cfg)
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "ht_plans_v1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "ht_plans_v1", `[{"id":"plan_1"}]`))

	v, ok, err := store.Get(ctx, "ht_plans_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"plan_1"}]`, v)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	_, stored := fake.objects["/hoops/slots/ht_plans_v1.json"]
	assert.True(t, stored)
}

func TestNewS3SlotStore_RequiresBucket(t *testing.T) {
	_, err := NewS3SlotStore(context.Background(), config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.True(t, strings.HasPrefix(endpointURL("http://localhost:9000", true), "http://"))
}
