package runs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenloop/biolca/core/history"
)

type memStore struct {
	records []history.RunRecord
	err     error
}

func (m *memStore) Append(_ context.Context, rec history.RunRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memStore) Query(_ context.Context, q history.RunQuery) ([]history.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var res []history.RunRecord
	for _, r := range m.records {
		if q.Source != "" && r.Source != q.Source {
			continue
		}
		if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
			continue
		}
		res = append(res, r)
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func TestHandlerListsRuns(t *testing.T) {
	store := &memStore{records: []history.RunRecord{
		{ID: "a", Source: "api", Timestamp: time.Now()},
		{ID: "b", Source: "cli", Timestamp: time.Now()},
	}}
	srv := httptest.NewServer(NewHandler(store, ""))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?source=cli")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []history.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestHandlerTimeFilter(t *testing.T) {
	old := history.RunRecord{ID: "old", Timestamp: time.Now().Add(-48 * time.Hour)}
	recent := history.RunRecord{ID: "new", Timestamp: time.Now()}
	srv := httptest.NewServer(NewHandler(&memStore{records: []history.RunRecord{old, recent}}, ""))
	defer srv.Close()

	start := url.QueryEscape(time.Now().Add(-time.Hour).Format(time.RFC3339))
	resp, err := http.Get(srv.URL + "?start=" + start)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var got []history.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestHandlerRejectsBadTimestamps(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&memStore{records: []history.RunRecord{{ID: "a"}}}, ""))
	defer srv.Close()

	for _, query := range []string{"?start=yesterday", "?end=2026-13-01"} {
		resp, err := http.Get(srv.URL + query)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestHandlerEmptyStoreReturnsArray(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&memStore{}, ""))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var got []history.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Empty(t, got)
}

func TestHandlerAuth(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&memStore{}, "s3cr3t"))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("Authorization", "Bearer s3cr3t")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&memStore{}, ""))
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
