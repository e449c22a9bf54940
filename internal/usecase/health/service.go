package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store answers but has nothing to serve.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckEmpty indicates a reachable store with no restaurants loaded.
	CheckEmpty CheckResult = "empty"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

const checkTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status      Status
	Checks      map[string]CheckResult
	Restaurants int
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	dataset DatasetCounter
}

// New creates a Service. dataset can be nil.
func New(db DBPinger, dataset DatasetCounter) *Service {
	return &Service{db: db, dataset: dataset}
}

// Check pings the store and, when it answers, counts the loaded dataset.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	r := Report{Status: Healthy, Checks: make(map[string]CheckResult, 2)}

	if err := s.db.Ping(ctx); err != nil {
		r.Checks["database"] = CheckError
		r.Status = Unhealthy
		return r
	}
	r.Checks["database"] = CheckOK

	if s.dataset == nil {
		return r
	}
	n, err := s.dataset.CountAll(ctx)
	switch {
	case err != nil:
		r.Checks["dataset"] = CheckError
		r.Status = Degraded
	case n == 0:
		r.Checks["dataset"] = CheckEmpty
		r.Status = Degraded
	default:
		r.Checks["dataset"] = CheckOK
		r.Restaurants = n
	}
	return r
}
