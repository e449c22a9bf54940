package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockCounter struct {
	n     int
	err   error
	calls int
}

func (m *mockCounter) CountAll(_ context.Context) (int, error) {
	m.calls++
	return m.n, m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCounter{n: 9551})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["dataset"] != CheckOK || r.Restaurants != 9551 {
		t.Errorf("expected dataset ok with 9551, got %q/%d", r.Checks["dataset"], r.Restaurants)
	}
}

func TestCheck_DBError(t *testing.T) {
	counter := &mockCounter{n: 1}
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, counter)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if counter.calls != 0 {
		t.Error("dataset should not be counted when the store is down")
	}
}

func TestCheck_EmptyDataset(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCounter{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["dataset"] != CheckEmpty {
		t.Errorf("expected dataset %q, got %q", CheckEmpty, r.Checks["dataset"])
	}
}

func TestCheck_CountError(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCounter{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["dataset"] != CheckError {
		t.Errorf("expected dataset %q, got %q", CheckError, r.Checks["dataset"])
	}
}

func TestCheck_NoCounter(t *testing.T) {
	svc := New(&mockDBPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["dataset"]; ok {
		t.Error("dataset check should be absent when counter is nil")
	}
}
