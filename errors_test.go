package bumparena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocErrorIs(t *testing.T) {
	cause := errors.New("mmap: cannot allocate memory")

	err := error(&AllocError{Kind: ErrReservationFailure, Size: 8, Align: 8, Capacity: 1 << 30, cause: cause})
	assert.ErrorIs(t, err, ErrReservationFailure)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrCapacityExhausted)

	var ae *AllocError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, uintptr(8), ae.Size)
}

func TestAllocErrorMessage(t *testing.T) {
	err := &AllocError{Kind: ErrCapacityExhausted, Size: 1, Align: 1, Offset: 4096, Capacity: 4096}
	assert.Equal(t, "bumparena: capacity exhausted: size=1 align=1 offset=4096 capacity=4096", err.Error())

	err = &AllocError{Kind: ErrReservationFailure, Size: 1, Align: 1, Capacity: 4096, cause: errors.New("boom")}
	assert.Equal(t, "bumparena: reservation failed: size=1 align=1 offset=0 capacity=4096: boom", err.Error())
}
