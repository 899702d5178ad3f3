// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell/internal/blob"
	"github.com/inkwell-labs/inkwell/internal/service"
	"github.com/inkwell-labs/inkwell/internal/state"
	"github.com/inkwell-labs/inkwell/internal/testutil"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        *blob.MemStore
	Service      *service.Service
	SessionStore *sessions.CookieStore
	Router       chi.Router

	t *testing.T
}

// SetupFunc mounts feature routes on the fixture router.
type SetupFunc func(chi.Router, *TestFixture) error

// SetupTestFixture builds a memory-backed service and mounts the given
// feature routes.
func SetupTestFixture(t *testing.T, setup SetupFunc) *TestFixture {
	t.Helper()

	store := blob.NewMemStore()

	snapshots, err := state.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = snapshots.Close() })

	svc := service.New(service.Config{
		Store:     store,
		Snapshots: snapshots,
		Logger:    testutil.NewTestLogger(t),
	})

	f := &TestFixture{
		Store:        store,
		Service:      svc,
		SessionStore: sessions.NewCookieStore([]byte("test-secret")),
		Router:       chi.NewMux(),
		t:            t,
	}

	require.NoError(t, setup(f.Router, f))
	return f
}

// WriteBlob seeds the store with raw content.
func (f *TestFixture) WriteBlob(path string, data []byte) {
	f.t.Helper()
	_, err := f.Store.Put(context.Background(), path, data, "")
	require.NoError(f.t, err)
}

// Do performs a request against the fixture router, encoding body as JSON
// when it is non-nil, and carrying over cookies from prior responses.
func (f *TestFixture) Do(method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	f.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.Router.ServeHTTP(rec, req)
	return rec
}

// DecodeBody unmarshals a JSON response body into v.
func (f *TestFixture) DecodeBody(rec *httptest.ResponseRecorder, v any) {
	f.t.Helper()
	require.NoError(f.t, json.Unmarshal(rec.Body.Bytes(), v))
}
