package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/xlttj/whitelist/pkg/store"
	"github.com/xlttj/whitelist/pkg/whitelist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (http.Handler, *whitelist.List) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "whitelist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	l, err := whitelist.New(s, nil)
	require.NoError(t, err)
	return New(l).Handler(), l
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeEntries(t *testing.T, w *httptest.ResponseRecorder) []entryResponse {
	t.Helper()
	var out []entryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAddAndListEntries(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(h, http.MethodPost, "/entries", `{"hostname":"example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(h, http.MethodGet, "/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeEntries(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "example.com", entries[0].Hostname)
	assert.True(t, entries[0].Enabled)
}

func TestAddErrors(t *testing.T) {
	h, l := newTestServer(t)
	require.NoError(t, l.Add("example.com"))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid hostname", `{"hostname":"not a host!"}`, http.StatusBadRequest},
		{"duplicate", `{"hostname":"example.com"}`, http.StatusConflict},
		{"missing field", `{}`, http.StatusBadRequest},
		{"malformed body", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/entries", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
	assert.Len(t, l.Entries(), 1)
}

func TestEditEntry(t *testing.T) {
	h, l := newTestServer(t)
	require.NoError(t, l.Add("old.example.com"))
	id := l.Entries()[0].ID
	_, err := l.Toggle(id)
	require.NoError(t, err)

	path := "/entries/" + itoa(id)
	w := do(h, http.MethodPut, path, `{"hostname":"new.example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeEntries(t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "new.example.com", entries[0].Hostname)
	assert.False(t, entries[0].Enabled)

	w = do(h, http.MethodPut, path, `{"hostname":"bad host"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodPut, "/entries/999", `{"hostname":"other.example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodPut, "/entries/abc", `{"hostname":"other.example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleEntry(t *testing.T) {
	h, l := newTestServer(t)
	require.NoError(t, l.Add("example.com"))
	id := l.Entries()[0].ID

	w := do(h, http.MethodPost, "/entries/"+itoa(id)+"/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		ID      int64 `json:"id"`
		Enabled bool  `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id, body.ID)
	assert.False(t, body.Enabled)

	w = do(h, http.MethodPost, "/entries/999/toggle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEntryIsIdempotent(t *testing.T) {
	h, l := newTestServer(t)
	require.NoError(t, l.Add("example.com"))
	path := "/entries/" + itoa(l.Entries()[0].ID)

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, path, "").Code)
	assert.Empty(t, l.Entries())
}

func TestHostsListsEnabledOnly(t *testing.T) {
	h, l := newTestServer(t)
	require.NoError(t, l.Add("a.example.com"))
	require.NoError(t, l.Add("b.example.com"))
	for _, e := range l.Entries() {
		if e.Hostname == "b.example.com" {
			_, err := l.Toggle(e.ID)
			require.NoError(t, err)
		}
	}

	w := do(h, http.MethodGet, "/hosts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a.example.com\n", w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
}

func TestInfo(t *testing.T) {
	h, l := newTestServer(t)
	require.NoError(t, l.Add("a.example.com"))
	require.NoError(t, l.Add("b.example.com"))
	_, err := l.Toggle(l.Entries()[0].ID)
	require.NoError(t, err)

	w := do(h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body["total_entries"])
	assert.Equal(t, 1, body["enabled_entries"])
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
