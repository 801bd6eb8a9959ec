package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/virtualta/internal/db"
)

// LPushTrim prepends value and caps the list length in a single DoMulti round-trip.
// maxLen <= 0 skips the trim.
func (s *Store) LPushTrim(ctx context.Context, key string, value []byte, maxLen int64) error {
	cmds := []rueidis.Completed{s.b().Lpush().Key(key).Element(string(value)).Build()}
	if maxLen > 0 {
		cmds = append(cmds, s.b().Ltrim().Key(key).Start(0).Stop(maxLen-1).Build())
	}

	ops := []string{db.OpLPush, db.OpLTrim}
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: ops[i], Err: fmt.Errorf("key %s: %w", key, err)}
		}
	}
	return nil
}

// LRange returns list elements start..stop inclusive. A missing key yields an empty slice.
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	cmd := s.b().Lrange().Key(key).Start(start).Stop(stop).Build()
	vals, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return [][]byte{}, nil
		}
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}
