package schedule

import (
	"sync/atomic"

	"github.com/oshilog/oshilog/internal/utils"
)

// IDSource yields identifiers for newly created events. It is injected so
// tests can use a deterministic counter.
type IDSource interface {
	NextID() int64
}

// ClockIDSource derives ids from the wall clock, keeping the historical id
// space (milliseconds since epoch). Two creations within the same
// millisecond would collide; that behavior is inherited, not designed.
type ClockIDSource struct {
	Clock utils.Clock
}

func (s ClockIDSource) NextID() int64 {
	return s.Clock.Now().UnixMilli()
}

// SequenceIDSource counts up from zero.
type SequenceIDSource struct {
	next atomic.Int64
}

func (s *SequenceIDSource) NextID() int64 {
	return s.next.Add(1)
}
