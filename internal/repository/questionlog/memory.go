// Package questionlog stores answered questions for the recent-questions view.
package questionlog

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/kailas-cloud/virtualta/internal/domain"
)

// Memory is a process-local question log. Records are lost on restart.
type Memory struct {
	mu         sync.Mutex
	records    []domain.QuestionRecord // chronological
	lastID     int64
	maxRecords int
	now        func() time.Time
}

// NewMemory creates an in-memory log. maxRecords <= 0 keeps every record.
func NewMemory(maxRecords int) *Memory {
	return &Memory{maxRecords: maxRecords, now: time.Now}
}

// WithClock overrides the timestamp source (tests).
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

// Append stores a record under the next monotonic ID, starting at 1.
func (m *Memory) Append(_ context.Context, question, answer string, links []domain.Link) (domain.QuestionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	rec := domain.QuestionRecord{
		ID:        m.lastID,
		Question:  question,
		Answer:    answer,
		Links:     domain.EncodeLinks(links),
		CreatedAt: m.now(),
	}
	m.records = append(m.records, rec)

	if m.maxRecords > 0 && len(m.records) > m.maxRecords {
		m.records = slices.Clone(m.records[len(m.records)-m.maxRecords:])
	}
	return rec, nil
}

// Recent returns up to limit records, newest first. A negative limit returns every record.
// Records are kept in ID order, so only the requested tail is copied.
func (m *Memory) Recent(_ context.Context, limit int) ([]domain.QuestionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.records)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]domain.QuestionRecord, n)
	for i := range out {
		out[i] = m.records[len(m.records)-1-i]
	}
	return out, nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Len returns the number of retained records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
