package questionlog

import (
	"context"
	"time"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	pingErr  error
	incrErr  error
	pushErr  error
	rangeErr error

	seq    int64
	list   [][]byte
	maxLen int64
	keys   []string
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

func (m *mockStore) Incr(_ context.Context, key string) (int64, error) {
	m.keys = append(m.keys, key)
	if m.incrErr != nil {
		return 0, m.incrErr
	}
	m.seq++
	return m.seq, nil
}

func (m *mockStore) LPushTrim(_ context.Context, key string, value []byte, maxLen int64) error {
	m.keys = append(m.keys, key)
	if m.pushErr != nil {
		return m.pushErr
	}
	m.maxLen = maxLen
	m.list = append([][]byte{value}, m.list...)
	if maxLen > 0 && int64(len(m.list)) > maxLen {
		m.list = m.list[:maxLen]
	}
	return nil
}

func (m *mockStore) LRange(_ context.Context, key string, start, stop int64) ([][]byte, error) {
	m.keys = append(m.keys, key)
	if m.rangeErr != nil {
		return nil, m.rangeErr
	}
	n := int64(len(m.list))
	if start >= n {
		return [][]byte{}, nil
	}
	if stop >= n {
		stop = n - 1
	}
	return m.list[start : stop+1], nil
}

// stepClock returns a clock advancing by one second per call.
func stepClock() func() time.Time {
	t := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}
