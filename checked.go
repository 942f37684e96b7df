package bumparena

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// TestingT is the subset of testing.TB used by Checked.
type TestingT interface {
	Errorf(format string, args ...any)
	Helper()
}

// Checked wraps an Allocator and verifies every block it hands out:
// the pointer must honour the requested alignment and the block must not
// overlap any earlier one. Violations are collected, not fatal.
//
// Checked keeps one bit per claimed byte, so it is meant for tests and
// stress runs rather than production paths.
type Checked struct {
	mem Allocator

	mu         sync.Mutex
	claimed    *roaring64.Bitmap
	blocks     map[uintptr]uintptr // start address -> size
	allocs     uint64
	violations []string
}

var _ Allocator = (*Checked)(nil)

// NewChecked wraps mem.
func NewChecked(mem Allocator) *Checked {
	return &Checked{
		mem:     mem,
		claimed: roaring64.New(),
		blocks:  make(map[uintptr]uintptr),
	}
}

// Allocate implements Allocator.
func (c *Checked) Allocate(size, align uintptr) unsafe.Pointer {
	ptr := c.mem.Allocate(size, align)
	if ptr == nil {
		return nil
	}

	addr := uintptr(ptr)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.allocs++
	if validAlign(align) && addr&(align-1) != 0 {
		c.violations = append(c.violations,
			fmt.Sprintf("misaligned block %#x: size=%d align=%d", addr, size, align))
	}

	c.blocks[addr] = size
	if size == 0 {
		return ptr
	}

	block := roaring64.New()
	block.AddRange(uint64(addr), uint64(addr)+uint64(size))
	if c.claimed.Intersects(block) {
		c.violations = append(c.violations,
			fmt.Sprintf("overlapping block %#x: size=%d align=%d", addr, size, align))
	}
	c.claimed.Or(block)

	return ptr
}

// Deallocate implements Allocator. Releasing a pointer that was never
// handed out, or with a different size, is recorded as a violation.
func (c *Checked) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	addr := uintptr(ptr)

	c.mu.Lock()
	known, ok := c.blocks[addr]
	switch {
	case !ok:
		c.violations = append(c.violations, fmt.Sprintf("deallocate of unknown block %#x", addr))
	case known != size:
		c.violations = append(c.violations,
			fmt.Sprintf("deallocate of block %#x with size %d, allocated with %d", addr, size, known))
	}
	c.mu.Unlock()

	c.mem.Deallocate(ptr, size, align)
}

// Allocations returns the number of blocks handed out.
func (c *Checked) Allocations() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allocs
}

// ClaimedBytes returns the number of distinct bytes covered by all blocks.
func (c *Checked) ClaimedBytes() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.claimed.GetCardinality()
}

// Owns reports whether the byte at p lies inside a handed out block.
func (c *Checked) Owns(p unsafe.Pointer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.claimed.Contains(uint64(uintptr(p)))
}

// Violations returns a copy of the recorded violations.
func (c *Checked) Violations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.violations...)
}

// AssertValid reports every violation to t.
func (c *Checked) AssertValid(t TestingT) {
	t.Helper()
	for _, v := range c.Violations() {
		t.Errorf("bumparena: %s", v)
	}
}
