package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jobdeck/internal/api"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{})
	require.NoError(t, err)
	return s
}

func doGET(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodePage[T any](t *testing.T, rec *httptest.ResponseRecorder) api.Page[T] {
	t.Helper()
	var page api.Page[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func TestHealthz(t *testing.T) {
	s := testServer(t)
	rec := doGET(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestExportServesFullDataset(t *testing.T) {
	s := testServer(t)
	rec := doGET(t, s, "/api/v1/export")
	require.Equal(t, http.StatusOK, rec.Code)

	var ds api.Dataset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ds))

	fixtures, err := api.Fixtures()
	require.NoError(t, err)
	assert.Len(t, ds.Applicants, len(fixtures.Applicants))
	assert.Len(t, ds.Companies, len(fixtures.Companies))
	assert.Len(t, ds.Jobs, len(fixtures.Jobs))
}

func TestListDefaults(t *testing.T) {
	s := testServer(t)
	rec := doGET(t, s, "/api/v1/applicants")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodePage[api.Applicant](t, rec)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, page.TotalItems, len(page.Data))
}

func TestListSearchNarrows(t *testing.T) {
	s := testServer(t)
	rec := doGET(t, s, "/api/v1/jobs?q=berlin")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodePage[api.JobPost](t, rec)
	require.NotEmpty(t, page.Data)
	for _, j := range page.Data {
		assert.Equal(t, "Berlin", j.Location)
	}
	assert.Equal(t, len(page.Data), page.TotalItems)
}

func TestListSortDesc(t *testing.T) {
	s := testServer(t)
	rec := doGET(t, s, "/api/v1/jobs?sort=salary_max&dir=desc")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodePage[api.JobPost](t, rec)
	require.NotEmpty(t, page.Data)
	for i := 1; i < len(page.Data); i++ {
		assert.GreaterOrEqual(t, page.Data[i-1].SalaryMax, page.Data[i].SalaryMax,
			"jobs not in descending salary order at index %d", i)
	}
}

func TestListUnknownSortKeyKeepsInputOrder(t *testing.T) {
	s := testServer(t)
	base := decodePage[api.JobPost](t, doGET(t, s, "/api/v1/jobs?page_size=100"))
	sorted := decodePage[api.JobPost](t, doGET(t, s, "/api/v1/jobs?page_size=100&sort=nonsense"))
	assert.Equal(t, base.Data, sorted.Data)
}

func TestListPageClamped(t *testing.T) {
	s := testServer(t)
	rec := doGET(t, s, "/api/v1/applicants?page=99&page_size=3")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodePage[api.Applicant](t, rec)
	assert.Equal(t, page.TotalPages, page.Page)
	assert.NotEmpty(t, page.Data, "clamped last page must not be empty")
}

func TestListEmptyResultEnvelope(t *testing.T) {
	s := testServer(t)
	rec := doGET(t, s, "/api/v1/companies?q=zzzznomatch")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodePage[api.Company](t, rec)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListInvalidParams(t *testing.T) {
	s := testServer(t)

	rec := doGET(t, s, "/api/v1/applicants?dir=sideways")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGET(t, s, "/api/v1/applicants?page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGET(t, s, "/api/v1/applicants?page_size=xyz")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetail(t *testing.T) {
	s := testServer(t)
	fixtures, err := api.Fixtures()
	require.NoError(t, err)
	want := fixtures.Applicants[0]

	rec := doGET(t, s, "/api/v1/applicants/"+want.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.Applicant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want.Name, got.Name)

	rec = doGET(t, s, "/api/v1/applicants/no-such-id")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "record not found")
}

func TestClientAgainstServer(t *testing.T) {
	s := testServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	c := api.NewClient(ts.URL)
	page, err := c.Jobs(t.Context(), api.ListParams{Query: "remote", PageSize: 50})
	require.NoError(t, err)
	require.NotEmpty(t, page.Data)
}
