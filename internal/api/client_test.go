package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtures(t *testing.T) {
	ds, err := Fixtures()
	require.NoError(t, err)

	assert.NotEmpty(t, ds.Applicants)
	assert.NotEmpty(t, ds.Companies)
	assert.NotEmpty(t, ds.Jobs)

	for _, a := range ds.Applicants {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Name)
		assert.False(t, a.AppliedAt.IsZero(), "applicant %s has no applied_at", a.Name)
	}
}

func TestOfflineClientServesFixtures(t *testing.T) {
	c := NewClient("")
	require.True(t, c.Offline())

	ds, err := c.Dataset(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, ds.Jobs)
}

func TestClientDataset(t *testing.T) {
	want := Dataset{
		Applicants: []Applicant{{ID: "a1", Name: "Test Person", Status: StatusApplied}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/export", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ds, err := c.Dataset(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Applicants, 1)
	assert.Equal(t, "Test Person", ds.Applicants[0].Name)
}

func TestClientApplicantsEncodesParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "engineer", q.Get("q"))
		assert.Equal(t, "applied_at", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("dir"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("page_size"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Page[Applicant]{
			Data:       []Applicant{{ID: "a1"}},
			Page:       2,
			PageSize:   5,
			TotalItems: 7,
			TotalPages: 2,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	page, err := c.Applicants(context.Background(), ListParams{
		Query:    "engineer",
		SortKey:  "applied_at",
		SortDir:  "desc",
		Page:     2,
		PageSize: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 7, page.TotalItems)
	assert.Len(t, page.Data, 1)
}

func TestClientErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "dataset unavailable"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Dataset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset unavailable")
}

func TestListRequiresBaseURL(t *testing.T) {
	c := NewClient("")
	_, err := c.Jobs(context.Background(), ListParams{})
	require.Error(t, err)
}
