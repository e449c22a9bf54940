package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kailas-cloud/tablefinder/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a PostGIS store.
type Config struct {
	DSN          string
	Table        string
	MaxOpenConns int
}

// Store implements db.Store on PostgreSQL with PostGIS. Each restaurant is
// one row: flat fields as JSONB, a geography point and its load order.
type Store struct {
	conn *sql.DB
	q    queries
}

// NewStore opens a lib/pq connection pool. It does not dial; use
// WaitForReady to block until the server answers.
func NewStore(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	q, err := newQueries(cfg.Table)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return &Store{conn: conn, q: q}, nil
}

// CreateSchema installs PostGIS and creates the table and its indexes.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, stmt := range s.q.schema() {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return &db.Error{Op: db.OpSchema, Err: err}
		}
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.conn.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() {
	_ = s.conn.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// GeoSearch runs ST_DWithin on the sphere, nearest first.
func (s *Store) GeoSearch(ctx context.Context, q *db.GeoQuery) ([]db.GeoHit, error) {
	if err := q.Validate(); err != nil {
		return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
	}

	rows, err := s.conn.QueryContext(ctx, s.q.geoSearch(), q.Longitude, q.Latitude, q.RadiusMeters)
	if err != nil {
		return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var hits []db.GeoHit
	for rows.Next() {
		var h db.GeoHit
		if err := rows.Scan(&h.ID, &h.Distance); err != nil {
			return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
		}
		if h.Distance > q.RadiusMeters {
			continue
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
	}
	return hits, nil
}

// ListIDs returns ids in load order; limit < 0 means all.
func (s *Store) ListIDs(ctx context.Context, offset, limit int) ([]string, error) {
	if offset < 0 {
		offset = 0
	}
	if limit == 0 {
		return []string{}, nil
	}

	args := []any{offset}
	if limit > 0 {
		args = append(args, limit)
	}
	rows, err := s.conn.QueryContext(ctx, s.q.listIDs(limit > 0), args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpListIDs, Err: err}
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, &db.Error{Op: db.OpListIDs, Err: err}
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpListIDs, Err: err}
	}
	return ids, nil
}

// CountAll returns the row count.
func (s *Store) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, s.q.countAll()).Scan(&n); err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

// Records fetches rows for ids and returns them in input order.
func (s *Store) Records(ctx context.Context, ids []string) ([]map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.conn.QueryContext(ctx, s.q.records(), pq.Array(ids))
	if err != nil {
		return nil, &db.Error{Op: db.OpRecords, Err: err}
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[string]map[string]string, len(ids))
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, &db.Error{Op: db.OpRecords, Err: err}
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, &db.Error{Op: db.OpRecords, Err: fmt.Errorf("id %s: %w", id, err)}
		}
		byID[id] = fields
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpRecords, Err: err}
	}

	return orderRecords(ids, byID)
}

// PutRecords upserts all records in one transaction.
func (s *Store) PutRecords(ctx context.Context, records []db.Record) (err error) {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpPutRecords, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, s.q.upsert())
	if err != nil {
		return &db.Error{Op: db.OpPutRecords, Err: err}
	}
	defer func() { _ = stmt.Close() }()

	for i := range records {
		rec := &records[i]
		fields, mErr := json.Marshal(rec.Fields)
		if mErr != nil {
			return &db.Error{Op: db.OpPutRecords, Err: fmt.Errorf("record %s: %w", rec.ID, mErr)}
		}
		if _, err = stmt.ExecContext(ctx, rec.ID, rec.Order, fields, rec.Longitude, rec.Latitude); err != nil {
			return &db.Error{Op: db.OpPutRecords, Err: fmt.Errorf("record %s: %w", rec.ID, err)}
		}
	}

	if err = tx.Commit(); err != nil {
		return &db.Error{Op: db.OpPutRecords, Err: err}
	}
	return nil
}

func decodeFields(raw []byte) (map[string]string, error) {
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	if fields == nil {
		return nil, errors.New("decode fields: null document")
	}
	return fields, nil
}

// orderRecords lines rows up with ids; a missing id is ErrKeyNotFound.
func orderRecords(ids []string, byID map[string]map[string]string) ([]map[string]string, error) {
	out := make([]map[string]string, len(ids))
	for i, id := range ids {
		fields, ok := byID[id]
		if !ok {
			return nil, &db.Error{Op: db.OpRecords, Err: fmt.Errorf("id %s: %w", id, db.ErrKeyNotFound)}
		}
		out[i] = fields
	}
	return out, nil
}
