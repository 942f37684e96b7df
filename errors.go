package bumparena

import (
	"errors"
	"fmt"
)

var (
	// ErrReservationFailure is reported when the region could not be reserved.
	ErrReservationFailure = errors.New("bumparena: reservation failed")
	// ErrCapacityExhausted is reported when a request does not fit into the region.
	ErrCapacityExhausted = errors.New("bumparena: capacity exhausted")
	// ErrInvalidLayout is reported when the alignment is not a power of two.
	ErrInvalidLayout = errors.New("bumparena: invalid layout")
)

// AllocError describes a failed allocation.
//
// Kind is one of ErrReservationFailure, ErrCapacityExhausted or ErrInvalidLayout;
// errors.Is matches it, as well as the reserver's error for reservation failures.
type AllocError struct {
	Kind     error
	Size     uintptr
	Align    uintptr
	Offset   uintptr // offset when the failure was detected
	Capacity uintptr
	cause    error
}

func (e *AllocError) Error() string {
	msg := fmt.Sprintf("%v: size=%d align=%d offset=%d capacity=%d", e.Kind, e.Size, e.Align, e.Offset, e.Capacity)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *AllocError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.cause}
}
