package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	GeoSearcher
	Lister
	RecordReader
	RecordWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GeoSearcher runs spherical proximity queries against the geospatial index.
type GeoSearcher interface {
	// GeoSearch returns the members within q.RadiusMeters of the origin,
	// nearest first, each with its distance in meters.
	GeoSearch(ctx context.Context, q *GeoQuery) ([]GeoHit, error)
}

// Lister enumerates record identifiers in store-native order.
type Lister interface {
	// ListIDs returns up to limit ids starting at offset; limit < 0 means all.
	ListIDs(ctx context.Context, offset, limit int) ([]string, error)
	CountAll(ctx context.Context) (int, error)
}

// RecordReader hydrates records by identifier.
type RecordReader interface {
	// Records returns the flat fields for ids, in the same order.
	// A missing id fails the call with ErrKeyNotFound.
	Records(ctx context.Context, ids []string) ([]map[string]string, error)
}

// RecordWriter bulk-loads records (seeding only; the search path never writes).
type RecordWriter interface {
	PutRecords(ctx context.Context, records []Record) error
}
