package redis

import (
	"context"
	"strconv"

	"github.com/kailas-cloud/tablefinder/internal/db"
)

// ListIDs returns ids by rank from the order ZSET.
func (s *Store) ListIDs(ctx context.Context, offset, limit int) ([]string, error) {
	if offset < 0 {
		offset = 0
	}
	if limit == 0 {
		return []string{}, nil
	}
	stop := -1
	if limit > 0 {
		stop = offset + limit - 1
	}

	cmd := s.b().Zrange().Key(s.keys.order()).Min(strconv.Itoa(offset)).Max(strconv.Itoa(stop)).Build()
	ids, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpListIDs, Err: err}
	}
	return ids, nil
}

// CountAll returns the collection size (ZCARD of the order set).
func (s *Store) CountAll(ctx context.Context) (int, error) {
	cmd := s.b().Zcard().Key(s.keys.order()).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return int(n), nil
}
