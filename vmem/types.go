package vmem

import "errors"

// AccessPattern provides hints to the kernel about how a region will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed
	// AccessDontNeed expects data to not be accessed in the near future.
	AccessDontNeed
)

func (p AccessPattern) String() string {
	switch p {
	case AccessSequential:
		return "sequential"
	case AccessRandom:
		return "random"
	case AccessWillNeed:
		return "willneed"
	case AccessDontNeed:
		return "dontneed"
	default:
		return "default"
	}
}

var (
	// ErrUnsupported is returned when the platform has no native reservation primitive.
	ErrUnsupported = errors.New("vmem: reservation not supported on this platform")
	// ErrInvalidSize is returned when the requested size is not positive.
	ErrInvalidSize = errors.New("vmem: invalid reservation size")
	// ErrReleased is returned when using a region after Release.
	ErrReleased = errors.New("vmem: region is released")
)
