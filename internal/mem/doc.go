// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides Go heap allocations whose first byte sits on a caller-chosen
// power-of-two boundary, e.g. a page boundary for simulated reservations.
package mem
