package conv

import (
	"fmt"
	"math"
	"math/bits"
)

// UintptrToInt converts uintptr to int safely.
func UintptrToInt(v uintptr) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// IntToUintptr converts int to uintptr safely.
func IntToUintptr(v int) (uintptr, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uintptr (negative)", v)
	}
	return uintptr(v), nil
}

// UintptrToInt64 converts uintptr to int64 safely.
func UintptrToInt64(v uintptr) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int64 (too large)", v)
	}
	return int64(v), nil
}

// Uint64ToUintptr converts uint64 to uintptr safely.
func Uint64ToUintptr(v uint64) (uintptr, error) {
	if v > uint64(^uintptr(0)) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uintptr (too large)", v)
	}
	return uintptr(v), nil
}

// AddUintptr returns a+b and whether the sum did not wrap.
func AddUintptr(a, b uintptr) (uintptr, bool) {
	sum, carry := bits.Add(uint(a), uint(b), 0)
	return uintptr(sum), carry == 0
}
