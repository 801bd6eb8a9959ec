package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockPinger struct {
	err         error
	hasDeadline bool
}

func (m *mockPinger) Ping(ctx context.Context) error {
	_, m.hasDeadline = ctx.Deadline()
	return m.err
}

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	p := &mockPinger{}
	svc := New(p)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("IST", 19800))
	svc.now = func() time.Time { return fixed }

	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Message != Message {
		t.Errorf("unexpected message %q", r.Message)
	}
	if r.Checks["question_log"] != CheckOK {
		t.Errorf("expected question_log %q, got %q", CheckOK, r.Checks["question_log"])
	}
	if !r.Timestamp.Equal(fixed) || r.Timestamp.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", r.Timestamp)
	}
	if !p.hasDeadline {
		t.Error("ping should run with a deadline")
	}
}

func TestCheck_QuestionLogError(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["question_log"] != CheckError {
		t.Errorf("expected question_log %q, got %q", CheckError, r.Checks["question_log"])
	}
}

func TestCheck_NoQuestionLog(t *testing.T) {
	svc := New(nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if len(r.Checks) != 0 {
		t.Errorf("expected no checks, got %v", r.Checks)
	}
}
