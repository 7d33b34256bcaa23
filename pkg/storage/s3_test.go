package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Type   string
}

func fakeS3(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body), Type: r.Header.Get("Content-Type")})
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestS3Client_PutAndDelete(t *testing.T) {
	srv, requests := fakeS3(t)
	client, err := NewS3Client(S3Config{
		Endpoint:        srv.URL,
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Bucket:          "cardnews",
		BasePath:        "exports/",
		ForcePathStyle:  true,
	})
	require.NoError(t, err)

	obj, err := client.Put(context.Background(), "w1.json", []byte(`{"title":"A"}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, "exports/w1.json", obj.Key)
	assert.Equal(t, srv.URL+"/cardnews/exports/w1.json", obj.URL)
	assert.Equal(t, int64(13), obj.Size)

	require.NoError(t, client.Delete(context.Background(), obj.Key))

	reqs := requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPut, reqs[0].Method)
	assert.Equal(t, "/cardnews/exports/w1.json", reqs[0].Path)
	assert.Contains(t, reqs[0].Body, `{"title":"A"}`)
	assert.Equal(t, "application/json", reqs[0].Type)
	assert.Equal(t, http.MethodDelete, reqs[1].Method)
}

func TestS3Client_PresignGet(t *testing.T) {
	client, err := NewS3Client(S3Config{
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Bucket:          "cardnews",
		ForcePathStyle:  true,
	})
	require.NoError(t, err)

	u, err := client.PresignGet(context.Background(), "exports/w1.json", 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://localhost:9000/cardnews/exports/w1.json?"))
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "X-Amz-Expires=900")
}

func TestS3Client_PublicURL(t *testing.T) {
	cdn, err := NewS3Client(S3Config{Bucket: "b", CDNURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/exports/a%20b.json", cdn.PublicURL("exports/a b.json"))

	aws, err := NewS3Client(S3Config{Bucket: "b"})
	require.NoError(t, err)
	assert.Equal(t, "https://b.s3.amazonaws.com/k.json", aws.PublicURL("k.json"))

	_, err = NewS3Client(S3Config{})
	assert.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "works/2024/03/05/w1_1709632800000.json", GenerateKey("works", "w1.json", now))
}
