package bumparena

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats is a point-in-time snapshot of an arena.
type Stats struct {
	Capacity uintptr
	Offset   uintptr
	State    State

	Allocations    uint64 // successful allocations
	BytesRequested uint64 // sum of requested sizes
	BytesConsumed  uint64 // bytes the offset advanced by, padding included
	Failures       uint64
}

// Remaining returns the number of bytes past the offset.
func (s Stats) Remaining() uintptr {
	if s.Offset >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Offset
}

// Utilization returns the claimed share of the capacity in [0, 1].
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 || s.Offset >= s.Capacity {
		if s.Capacity == 0 {
			return 0
		}
		return 1
	}
	return float64(s.Offset) / float64(s.Capacity)
}

// Overhead returns the bytes lost to alignment padding.
func (s Stats) Overhead() uint64 {
	if s.BytesConsumed < s.BytesRequested {
		return 0
	}
	return s.BytesConsumed - s.BytesRequested
}

func (s Stats) String() string {
	return fmt.Sprintf("%s: %s of %s used (%.1f%%), %d allocations, %s padding, %d failures",
		s.State,
		humanize.IBytes(uint64(s.Offset)),
		humanize.IBytes(uint64(s.Capacity)),
		s.Utilization()*100,
		s.Allocations,
		humanize.IBytes(s.Overhead()),
		s.Failures,
	)
}
