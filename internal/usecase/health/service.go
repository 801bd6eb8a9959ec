package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the service answers but a dependency is failing.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Message is reported alongside a healthy status.
const Message = "TDS Virtual TA API is running"

// DefaultTimeout bounds a single Check.
const DefaultTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status    Status
	Message   string
	Timestamp time.Time
	Checks    map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	questionLog Pinger
	timeout     time.Duration
	now         func() time.Time
}

// New creates a Service. questionLog can be nil, in which case only liveness is reported.
func New(questionLog Pinger) *Service {
	return &Service{questionLog: questionLog, timeout: DefaultTimeout, now: time.Now}
}

// Check reports liveness and, when configured, question log reachability.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.questionLog != nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.questionLog.Ping(ctx); err != nil {
			checks["question_log"] = CheckError
		} else {
			checks["question_log"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{
		Status:    status,
		Message:   Message,
		Timestamp: s.now().UTC(),
		Checks:    checks,
	}
}
