package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesKindSentinel(t *testing.T) {
	err := Errorf(KindInvalidQuery, "no location or cuisines")
	if !errors.Is(err, ErrInvalidQuery) {
		t.Error("expected errors.Is(err, ErrInvalidQuery)")
	}
	if errors.Is(err, ErrPipeline) {
		t.Error("invalid query must not match ErrPipeline")
	}
}

func TestError_WrappedKeepsCauseAndKind(t *testing.T) {
	err := fmt.Errorf("search: %w", Wrap(KindStoreTimeout, context.DeadlineExceeded, "count pass"))
	if !errors.Is(err, ErrStoreTimeout) {
		t.Error("expected ErrStoreTimeout through wrapping")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected the cause to stay reachable")
	}
	if KindOf(err) != KindStoreTimeout {
		t.Errorf("KindOf = %q", KindOf(err))
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if k := KindOf(errors.New("boom")); k != "" {
		t.Errorf("expected empty kind, got %q", k)
	}
}

func TestError_Retryable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindStoreUnavailable, true},
		{KindStoreTimeout, true},
		{KindPipeline, false},
		{KindInvalidQuery, false},
	}
	for _, tc := range tests {
		e := &Error{Kind: tc.kind}
		if e.Retryable() != tc.want {
			t.Errorf("Retryable(%s) = %v, want %v", tc.kind, e.Retryable(), tc.want)
		}
	}
}
