package health

import "context"

// Pinger checks availability of the question log backend.
type Pinger interface {
	Ping(ctx context.Context) error
}
