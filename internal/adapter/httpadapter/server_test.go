package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/couchcryptid/epw-etl/internal/adapter/httpadapter"
	"github.com/couchcryptid/epw-etl/internal/epw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(newTestServer(nil), "/healthz").Code)
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(newTestServer(nil), "/readyz").Code)
	})

	t.Run("not ready", func(t *testing.T) {
		rec := get(newTestServer(errors.New("pipeline has not scanned for files yet")), "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(newTestServer(nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestManifestEndpoint(t *testing.T) {
	rec := get(newTestServer(nil), "/manifest")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Columns []struct {
			Name string `json:"name"`
			Type string `json:"type"`
			Unit string `json:"unit"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Columns, len(epw.Manifest()))
	assert.Equal(t, "timestamp", body.Columns[0].Name)
	assert.Equal(t, "datetime", body.Columns[0].Type)
	assert.Equal(t, "dry_bulb_temperature", body.Columns[2].Name)
	assert.Equal(t, "float", body.Columns[2].Type)
	assert.Equal(t, "C", body.Columns[2].Unit)
}

func TestUnknownMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/manifest", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
