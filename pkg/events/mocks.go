package events

import "context"

// NoOpPublisher is a publisher that does nothing. It serves tests and
// deployments without an event stream.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event OperationCommitted) error {
	return nil
}
