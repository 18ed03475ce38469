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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPut struct {
	method      string
	path        string
	contentType string
	body        []byte
}

// newStubS3 serves PutObject calls and records them. status controls the reply.
func newStubS3(t *testing.T, status int) (*httptest.Server, func() []recordedPut) {
	t.Helper()
	var (
		mu   sync.Mutex
		puts []recordedPut
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		puts = append(puts, recordedPut{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		})
		mu.Unlock()

		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
			return
		}
		w.Header().Set("ETag", `"stub"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedPut {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedPut(nil), puts...)
	}
}

func newTestClient(srv *httptest.Server) S3Client {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("key", "secret", ""),
	}
	return NewStorageClientFromConfig(cfg, "journal", func(o *s3.Options) {
		o.BaseEndpoint = aws.String(srv.URL)
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.RetryMaxAttempts = 1
	})
}

func TestUploadFile_PutsObject(t *testing.T) {
	srv, puts := newStubS3(t, http.StatusOK)
	client := newTestClient(srv)

	data := []byte("Content,Date Created\r\ntea,2024-05-01 09:00:00\r\n")
	key, err := client.UploadFile(context.Background(), data, "exports/snapshot.csv")
	require.NoError(t, err)
	assert.Equal(t, "exports/snapshot.csv", key)

	got := puts()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/journal/exports/snapshot.csv", got[0].path)
	assert.Contains(t, got[0].contentType, "text/csv")
	assert.Equal(t, data, got[0].body)
}

func TestUploadFile_EmptyKey(t *testing.T) {
	srv, puts := newStubS3(t, http.StatusOK)
	client := newTestClient(srv)

	_, err := client.UploadFile(context.Background(), []byte("x"), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.Empty(t, puts())
}

func TestUploadFile_ServerError(t *testing.T) {
	srv, _ := newStubS3(t, http.StatusForbidden)
	client := newTestClient(srv)

	_, err := client.UploadFile(context.Background(), []byte("x"), "exports/denied.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestUploadFile_CanceledContext(t *testing.T) {
	srv, _ := newStubS3(t, http.StatusOK)
	client := newTestClient(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.UploadFile(ctx, []byte("x"), "exports/late.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStorageClient_NoBucket(t *testing.T) {
	client, err := NewStorageClient(context.Background(), "", "us-east-1")
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestExportKey(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC)

	k1 := ExportKey(at)
	k2 := ExportKey(at)
	assert.True(t, strings.HasPrefix(k1, "exports/20240501T091500Z-"), k1)
	assert.True(t, strings.HasSuffix(k1, ".csv"), k1)
	assert.NotEqual(t, k1, k2)
}
