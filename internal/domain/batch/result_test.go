package batch

import (
	"errors"
	"testing"
)

func TestNewOK(t *testing.T) {
	r := NewOK(2, 6317637)
	if r.Line() != 2 || r.ID() != 6317637 {
		t.Errorf("got line=%d id=%d", r.Line(), r.ID())
	}
	if r.Status() != StatusOK {
		t.Errorf("expected status %q, got %q", StatusOK, r.Status())
	}
	if r.Err() != nil {
		t.Errorf("expected nil error, got %v", r.Err())
	}
}

func TestNewRejected(t *testing.T) {
	cause := errors.New("invalid latitude")
	r := NewRejected(7, 0, cause)
	if r.Line() != 7 || r.ID() != 0 {
		t.Errorf("got line=%d id=%d", r.Line(), r.ID())
	}
	if r.Status() != StatusRejected {
		t.Errorf("expected status %q, got %q", StatusRejected, r.Status())
	}
	if !errors.Is(r.Err(), cause) {
		t.Errorf("expected cause to be preserved, got %v", r.Err())
	}
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Add(NewOK(2, 1))
	s.Add(NewOK(3, 2))
	s.Add(NewRejected(4, 3, errors.New("bad row")))

	if s.Loaded != 2 {
		t.Errorf("Loaded = %d, want 2", s.Loaded)
	}
	if len(s.Rejected) != 1 || s.Rejected[0].Line() != 4 {
		t.Errorf("Rejected = %v", s.Rejected)
	}
	if s.Total() != 3 {
		t.Errorf("Total = %d, want 3", s.Total())
	}

	s.Failed = 2
	if s.Total() != 5 {
		t.Errorf("Total with failed rows = %d, want 5", s.Total())
	}
}
