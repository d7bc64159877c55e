// Package store provides the local SQLite cache of synced portal data.
// Commands read from the cache when it exists and fall back to the API
// client otherwise; sync replaces the whole cache in one transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/jobdeck/internal/api"
)

const lastSyncedKey = "last_synced_at"

// Store wraps the cache database.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (or creates) the cache at path and runs pending migrations.
// Use ":memory:" for an in-memory cache.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the cache database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceDataset swaps the cached dataset for ds in one transaction and
// records the sync time.
func (s *Store) ReplaceDataset(ctx context.Context, ds *api.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"applicants", "companies", "job_posts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, a := range ds.Applicants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO applicants (id, name, email, position, status, applied_at) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, a.Name, a.Email, a.Position, string(a.Status), a.AppliedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert applicant %s: %w", a.ID, err)
		}
	}

	for _, c := range ds.Companies {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO companies (id, name, industry, location, open_roles, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Industry, c.Location, c.OpenRoles, c.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert company %s: %w", c.ID, err)
		}
	}

	for _, j := range ds.Jobs {
		remote := 0
		if j.Remote {
			remote = 1
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO job_posts (id, title, company, location, salary_min, salary_max, remote, posted_at, description)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			j.ID, j.Title, j.Company, j.Location, j.SalaryMin, j.SalaryMax, remote,
			j.PostedAt.UTC().Format(time.RFC3339), j.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert job post %s: %w", j.ID, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		lastSyncedKey, now,
	)
	if err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sync: %w", err)
	}

	s.logger.Debug("cache replaced",
		"applicants", len(ds.Applicants),
		"companies", len(ds.Companies),
		"jobs", len(ds.Jobs))
	return nil
}

// Dataset reads the full cached dataset.
func (s *Store) Dataset(ctx context.Context) (*api.Dataset, error) {
	applicants, err := s.Applicants(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.Companies(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	return &api.Dataset{Applicants: applicants, Companies: companies, Jobs: jobs}, nil
}

// Applicants reads all cached applicants in insertion order.
func (s *Store) Applicants(ctx context.Context) ([]api.Applicant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, position, status, applied_at FROM applicants ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []api.Applicant
	for rows.Next() {
		var a api.Applicant
		var status, appliedAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Position, &status, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		a.Status = api.ApplicantStatus(status)
		a.AppliedAt, err = parseStoredTime(appliedAt)
		if err != nil {
			return nil, fmt.Errorf("applicant %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Companies reads all cached companies in insertion order.
func (s *Store) Companies(ctx context.Context) ([]api.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, industry, location, open_roles, created_at FROM companies ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []api.Company
	for rows.Next() {
		var c api.Company
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.Location, &c.OpenRoles, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		c.CreatedAt, err = parseStoredTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("company %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Jobs reads all cached job posts in insertion order.
func (s *Store) Jobs(ctx context.Context) ([]api.JobPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, company, location, salary_min, salary_max, remote, posted_at, description
		 FROM job_posts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []api.JobPost
	for rows.Next() {
		var j api.JobPost
		var remote int
		var postedAt string
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.SalaryMin, &j.SalaryMax, &remote, &postedAt, &j.Description); err != nil {
			return nil, fmt.Errorf("failed to scan job post: %w", err)
		}
		j.Remote = remote != 0
		j.PostedAt, err = parseStoredTime(postedAt)
		if err != nil {
			return nil, fmt.Errorf("job post %s: %w", j.ID, err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// LastSyncedAt returns the time of the last successful sync. ok is false when
// the cache has never been synced.
func (s *Store) LastSyncedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	var raw string
	err = s.db.QueryRowContext(ctx,
		`SELECT value FROM sync_meta WHERE key = ?`, lastSyncedKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read sync time: %w", err)
	}
	t, err = parseStoredTime(raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Empty reports whether the cache holds no records at all.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM applicants) + (SELECT COUNT(*) FROM companies) + (SELECT COUNT(*) FROM job_posts)`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count cache rows: %w", err)
	}
	return n == 0, nil
}

func parseStoredTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed stored timestamp %q: %w", raw, err)
	}
	return t, nil
}
