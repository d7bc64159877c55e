package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/jobdeck/internal/api"
	"github.com/leapstack-labs/jobdeck/pkg/listview"
	"github.com/leapstack-labs/jobdeck/pkg/sortable"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dataset())
}

// handleEvents streams a reload ping to SSE clients whenever the dataset is
// replaced. Clients re-fetch on every event; the event carries no payload.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(ch)

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			fmt.Fprint(w, "event: reload\ndata: {}\n\n")
			flusher.Flush()
		}
	}
}

// listParams is the parsed query-parameter set shared by all list endpoints.
type listParams struct {
	query    string
	sortKey  string
	sortDir  sortable.Direction
	page     int
	pageSize int
}

func parseListParams(r *http.Request) (listParams, error) {
	q := r.URL.Query()
	p := listParams{
		query:    q.Get("q"),
		sortKey:  q.Get("sort"),
		page:     1,
		pageSize: defaultPageSize,
	}

	switch dir := q.Get("dir"); dir {
	case "", "asc":
		p.sortDir = sortable.DirectionAsc
	case "desc":
		p.sortDir = sortable.DirectionDesc
	default:
		return p, fmt.Errorf("invalid dir %q: want asc or desc", dir)
	}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("invalid page %q", raw)
		}
		p.page = n
	}
	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("invalid page_size %q", raw)
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		p.pageSize = n
	}
	return p, nil
}

// listHandler serves one resource through the list pipeline. The handler runs
// the same search, sort, and pagination engines the offline client uses, so
// remote and local listings agree byte for byte.
func listHandler[T any](s *Server, cols []sortable.Column, value sortable.ValueFunc[T], slice func(*api.Dataset) []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := parseListParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		lv := listview.New(listview.Config[T]{
			Columns:  cols,
			Value:    value,
			PageSize: p.pageSize,
		})
		defer lv.Close()

		lv.SetSource(slice(s.dataset()))
		lv.Search().Set(p.query)
		lv.Search().Flush()
		if p.sortKey != "" {
			lv.Sort().Set(p.sortKey, p.sortDir)
		}
		lv.Pager().GoTo(p.page)

		data := lv.Visible()
		if data == nil {
			data = []T{}
		}

		pager := lv.Pager()
		writeJSON(w, http.StatusOK, api.Page[T]{
			Data:       data,
			Page:       pager.Page(),
			PageSize:   pager.PageSize(),
			TotalItems: pager.TotalItems(),
			TotalPages: pager.TotalPages(),
		})
	}
}

// detailHandler serves one record by path id.
func detailHandler[T any](s *Server, slice func(*api.Dataset) []T, id func(T) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		want := chi.URLParam(r, "id")
		for _, rec := range slice(s.dataset()) {
			if id(rec) == want {
				writeJSON(w, http.StatusOK, rec)
				return
			}
		}
		writeError(w, http.StatusNotFound, fmt.Sprintf("record not found: %s", want))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
