package assess

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenloop/biolca/core/history"
	"github.com/greenloop/biolca/core/lca"
)

func jsonDecode(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

type memStore struct {
	records []history.RunRecord
}

func (m *memStore) Append(_ context.Context, rec history.RunRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memStore) Query(_ context.Context, _ history.RunQuery) ([]history.RunRecord, error) {
	return m.records, nil
}

func (m *memStore) Close() error { return nil }

type stubAssessor struct {
	lastSource string
	factors    lca.FactorSet
}

func (s *stubAssessor) Assess(_ context.Context, inv lca.Inventory, source string) (Result, error) {
	s.lastSource = source
	e, err := lca.Compute(inv, s.factors)
	if err != nil {
		return Result{}, err
	}
	return Result{
		RunID:         "run-1",
		Emissions:     e,
		Contributions: lca.Contributions(e),
		Diesel:        lca.CompareDiesel(e, 0.095),
	}, nil
}

func validBody() string {
	return `{
		"wco_volume_l": 30, "collection_distance_km": 24.6,
		"methanol_l": 8.54, "koh_kg": 0.45,
		"reaction_energy": 0.06, "purification_water_l": 27, "drying_energy": 1,
		"distribution_distance_km": 223, "load_capacity_l": 200,
		"glycerol_kg": 5, "wastewater_l": 54
	}`
}

func testFactors() lca.FactorSet {
	return lca.FactorSet{
		CollectionKgPerKm: 0.3, MethanolKgPerL: 1.5, KOHKgPerKg: 2.0,
		EnergyKgPerKWh: 0.5, WastewaterKgPerL: 0.2, GlycerolKgPerKg: 0.1,
	}
}

func TestHandlerComputes(t *testing.T) {
	a := &stubAssessor{factors: testFactors()}
	srv := httptest.NewServer(NewHandler(a))
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(validBody()))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "api", a.lastSource)

	var res Result
	require.NoError(t, jsonDecode(resp, &res))
	assert.InDelta(t, 32.3815, res.Emissions.Total, 1e-9)
	assert.Len(t, res.Contributions, 4)
}

func TestHandlerRejectsInvalidInventory(t *testing.T) {
	a := &stubAssessor{factors: testFactors()}
	srv := httptest.NewServer(NewHandler(a))
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(`{"load_capacity_l": 0}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&stubAssessor{factors: testFactors()}))
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&stubAssessor{factors: testFactors()}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestReportHandlerWritesCSV(t *testing.T) {
	a := &stubAssessor{factors: testFactors()}
	srv := httptest.NewServer(NewReportHandler(a, &memStore{}))
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(validBody()))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	body := readAll(t, resp)
	assert.True(t, strings.HasPrefix(body, "Metric,Value (kg CO2)\n"))
	assert.Contains(t, body, "Total (kg CO2 per 1 MJ),32.3815")
}

func TestReportHandlerServesLatestRun(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{records: []history.RunRecord{
		{ID: "old", Timestamp: now.Add(-time.Hour), Emissions: lca.StageEmissions{Total: 1}},
		{ID: "new", Timestamp: now, Emissions: lca.StageEmissions{Total: 32.3815}},
	}}
	srv := httptest.NewServer(NewReportHandler(&stubAssessor{}, store))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, readAll(t, resp), "Total (kg CO2 per 1 MJ),32.3815")
}

func TestReportHandlerNoRuns(t *testing.T) {
	srv := httptest.NewServer(NewReportHandler(&stubAssessor{}, &memStore{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
