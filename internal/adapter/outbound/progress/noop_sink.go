package progress

// NoopSink discards all progress notifications.
type NoopSink struct{}

// NewNoopSink creates a sink that discards everything.
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

// TaskStarted does nothing.
func (*NoopSink) TaskStarted(string) {}

// TaskFinished does nothing.
func (*NoopSink) TaskFinished(string) {}

// FileCreated does nothing.
func (*NoopSink) FileCreated(string) {}
