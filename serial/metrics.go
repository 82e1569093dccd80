package serial

import (
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Stats tracks what went over the link during one session.
type Stats struct {
	// Write Operations
	Writes       atomic.Int64 // Commands written
	WriteErrors  atomic.Int64 // Failed or short writes
	BytesWritten atomic.Int64 // Total bytes written

	// Read Operations
	Drains       atomic.Int64 // ReadAvailable calls
	ReadErrors   atomic.Int64 // Driver errors while draining
	BytesRead    atomic.Int64 // Total bytes drained
	EmptyReplies atomic.Int64 // Drains that ended in ErrNoReply
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Writes       int64
	WriteErrors  int64
	BytesWritten int64
	Drains       int64
	ReadErrors   int64
	BytesRead    int64
	EmptyReplies int64

	// Read buffer pool usage
	Pool PoolStats
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Writes:       s.Writes.Load(),
		WriteErrors:  s.WriteErrors.Load(),
		BytesWritten: s.BytesWritten.Load(),
		Drains:       s.Drains.Load(),
		ReadErrors:   s.ReadErrors.Load(),
		BytesRead:    s.BytesRead.Load(),
		EmptyReplies: s.EmptyReplies.Load(),
	}
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s StatsSnapshot) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("writes", s.Writes).
		Int64("write_errors", s.WriteErrors).
		Int64("bytes_written", s.BytesWritten).
		Int64("drains", s.Drains).
		Int64("read_errors", s.ReadErrors).
		Int64("bytes_read", s.BytesRead).
		Int64("empty_replies", s.EmptyReplies).
		Int64("pool_gets", s.Pool.Gets).
		Int64("pool_creates", s.Pool.Creates).
		Float64("pool_hit_ratio", s.Pool.HitRatio())
}
