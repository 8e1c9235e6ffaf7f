package outbound

// ProgressSink receives progress notifications from a running split
// operation. Implementations are pure side displays: they must never
// influence the read/write sequence, and any background rendering they
// start for a task must be fully stopped by the time TaskFinished
// returns, so it cannot race with the operation's final output.
type ProgressSink interface {
	// TaskStarted signals the beginning of a named phase of the
	// operation, e.g. "count lines" or "read & write".
	TaskStarted(name string)

	// TaskFinished signals the end of the phase previously started with
	// the same name.
	TaskFinished(name string)

	// FileCreated reports the path of a fully materialized target file.
	FileCreated(path string)
}
