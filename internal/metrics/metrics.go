// Package metrics holds the process-wide counters and renders them in the
// Prometheus text exposition format.
package metrics

// Recorder captures business events worth counting.
type Recorder interface {
	IncUserCreated()
}

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all events.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}
