// Package conv provides safe integer conversion and arithmetic utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between Go's int and uintptr, and when adding byte offsets.
//
// Use cases:
//   - Handing a uintptr capacity to APIs that take int sizes
//   - Advancing offsets without wrapping around the address space
//
// For conversions that are provably safe by domain constraints, use direct type
// casts instead to avoid overhead.
package conv
