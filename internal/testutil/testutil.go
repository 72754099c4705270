package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bookstore/internal/platform/database"

	"go.uber.org/zap"
)

// NewJSONRequest creates a request whose body is body encoded as JSON.
func NewJSONRequest(method, path string, body interface{}) *http.Request {
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRawRequest creates a request with a literal body and content type.
func NewRawRequest(method, path, contentType, body string) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

// NewFormRequest creates a URL-encoded form submission.
func NewFormRequest(method, path string, form url.Values) *http.Request {
	return NewRawRequest(method, path, "application/x-www-form-urlencoded", form.Encode())
}

// RecordResponse is a decoded httptest response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   []byte
}

// RecordHTTPResponse reads the full response out of w.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)
	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyBytes,
	}
}

// DecodeJSON unmarshals the recorded body into v.
func (rr RecordResponse) DecodeJSON(t testing.TB, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body, v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body, err)
	}
}

// NewSQLiteDB opens a migrated in-memory sqlite database closed at test end.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	sqlDB, err := database.OpenSQLite(ctx, ":memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(ctx, "sqlite", sqlDB, zap.NewNop()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return sqlDB
}
