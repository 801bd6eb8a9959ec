package questionlog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/kailas-cloud/virtualta/internal/domain"
)

// store is the consumer interface for the Redis-backed log (ISP).
type store interface {
	Ping(ctx context.Context) error
	Incr(ctx context.Context, key string) (int64, error)
	LPushTrim(ctx context.Context, key string, value []byte, maxLen int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
}

// Redis keeps the log in a capped Redis list; IDs come from INCR so they stay unique across replicas.
type Redis struct {
	store      store
	seqKey     string
	listKey    string
	maxRecords int
	now        func() time.Time
}

// NewRedis creates a Redis-backed log. maxRecords <= 0 keeps every record.
func NewRedis(s store, keyPrefix string, maxRecords int) *Redis {
	return &Redis{
		store:      s,
		seqKey:     keyPrefix + "question:seq",
		listKey:    keyPrefix + "questions",
		maxRecords: maxRecords,
		now:        time.Now,
	}
}

// WithClock overrides the timestamp source (tests).
func (r *Redis) WithClock(now func() time.Time) *Redis {
	r.now = now
	return r
}

// Append stores a record under the next ID.
func (r *Redis) Append(ctx context.Context, question, answer string, links []domain.Link) (domain.QuestionRecord, error) {
	id, err := r.store.Incr(ctx, r.seqKey)
	if err != nil {
		return domain.QuestionRecord{}, fmt.Errorf("%w: next id: %w", domain.ErrStorage, err)
	}

	rec := domain.QuestionRecord{
		ID:        id,
		Question:  question,
		Answer:    answer,
		Links:     domain.EncodeLinks(links),
		CreatedAt: r.now().UTC(),
	}
	data, err := json.Marshal(toJSON(rec))
	if err != nil {
		return domain.QuestionRecord{}, fmt.Errorf("marshal record %d: %w", id, err)
	}

	if err := r.store.LPushTrim(ctx, r.listKey, data, int64(r.maxRecords)); err != nil {
		return domain.QuestionRecord{}, fmt.Errorf("%w: push record %d: %w", domain.ErrStorage, id, err)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first. Undecodable entries are skipped.
func (r *Redis) Recent(ctx context.Context, limit int) ([]domain.QuestionRecord, error) {
	if limit <= 0 {
		return []domain.QuestionRecord{}, nil
	}

	raw, err := r.store.LRange(ctx, r.listKey, 0, int64(limit-1))
	if err != nil {
		return nil, fmt.Errorf("%w: list records: %w", domain.ErrStorage, err)
	}

	out := make([]domain.QuestionRecord, 0, len(raw))
	for _, data := range raw {
		var rj recordJSON
		if err := json.Unmarshal(data, &rj); err != nil {
			continue
		}
		out = append(out, fromJSON(rj))
	}
	sortNewestFirst(out)
	return out, nil
}

// Ping checks the backing store.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}

// sortNewestFirst orders by CreatedAt desc, then ID desc for identical timestamps.
func sortNewestFirst(recs []domain.QuestionRecord) {
	slices.SortStableFunc(recs, func(a, b domain.QuestionRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})
}
