// Package metrics records list operation outcomes.
package metrics

import "time"

// Result labels for operation counters.
const (
	ResultSuccess   = "success"
	ResultForbidden = "forbidden"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

// Recorder receives one observation per list operation. Implementations must
// be safe for concurrent use.
type Recorder interface {
	ObserveOperation(op, result string, d time.Duration)
	AddAffected(op string, n int64)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not wired).
type NoopRecorder struct{}

func (NoopRecorder) ObserveOperation(string, string, time.Duration) {}
func (NoopRecorder) AddAffected(string, int64)                      {}
