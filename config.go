package bumparena

import (
	"fmt"
	"os"
	"strings"

	"github.com/c2h5oh/datasize"

	"github.com/hupe1980/bumparena/internal/conv"
)

// CapacityEnv names the environment variable read by Default.
const CapacityEnv = "BUMPARENA_CAPACITY"

// ParseCapacity parses a human-readable size such as "512MB", "1GB" or "65536".
// Units are binary: 1KB is 1024 bytes.
func ParseCapacity(s string) (uintptr, error) {
	var v datasize.ByteSize
	if err := v.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("bumparena: parse capacity %q: %w", s, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("bumparena: parse capacity %q: must be positive", s)
	}
	n, err := conv.Uint64ToUintptr(v.Bytes())
	if err != nil {
		return 0, fmt.Errorf("bumparena: parse capacity %q: %w", s, err)
	}
	return n, nil
}

// capacityFromEnv returns the capacity configured through CapacityEnv,
// or DefaultCapacity if it is unset or invalid.
func capacityFromEnv() (uintptr, error) {
	val, ok := os.LookupEnv(CapacityEnv)
	if !ok || strings.TrimSpace(val) == "" {
		return DefaultCapacity, nil
	}
	n, err := ParseCapacity(val)
	if err != nil {
		return DefaultCapacity, err
	}
	return n, nil
}
