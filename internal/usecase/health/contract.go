package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DatasetCounter reports how many restaurants are loaded.
type DatasetCounter interface {
	CountAll(ctx context.Context) (int, error)
}
