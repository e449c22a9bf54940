package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/tablefinder/internal/db"
)

// Records fetches all hashes in a single DoMulti round-trip.
func (s *Store) Records(ctx context.Context, ids []string) ([]map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(ids))
	for i, id := range ids {
		cmds[i] = s.b().Hgetall().Key(s.keys.record(id)).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([]map[string]string, len(results))
	for i, res := range results {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, &db.Error{Op: db.OpRecords, Err: fmt.Errorf("id %s: %w", ids[i], err)}
		}
		if len(m) == 0 {
			return nil, &db.Error{Op: db.OpRecords, Err: fmt.Errorf("id %s: %w", ids[i], db.ErrKeyNotFound)}
		}
		out[i] = m
	}
	return out, nil
}

// PutRecords writes each record's hash, geo member and order entry in one
// DoMulti round-trip.
func (s *Store) PutRecords(ctx context.Context, records []db.Record) error {
	if len(records) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, 0, len(records)*3)
	for i := range records {
		rec := &records[i]
		hset := s.b().Hset().Key(s.keys.record(rec.ID)).FieldValue()
		for k, v := range rec.Fields {
			hset = hset.FieldValue(k, v)
		}
		cmds = append(cmds,
			hset.Build(),
			s.b().Arbitrary("GEOADD").Keys(s.keys.geo()).
				Args(formatFloat(rec.Longitude), formatFloat(rec.Latitude), rec.ID).Build(),
			s.b().Zadd().Key(s.keys.order()).ScoreMember().ScoreMember(rec.Order, rec.ID).Build(),
		)
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpPutRecords, Err: fmt.Errorf("record %s: %w", records[i/3].ID, err)}
		}
	}
	return nil
}
