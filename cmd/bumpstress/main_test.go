package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand() *stressCommand {
	return &stressCommand{
		capacity:  "1MB",
		workers:   2,
		allocs:    100,
		size:      32,
		align:     8,
		reserver:  "heap",
		logFormat: "text",
		logLevel:  "error",
	}
}

func TestRun(t *testing.T) {
	cmd := testCommand()
	cmd.dumpMetrics = true

	var out bytes.Buffer
	require.NoError(t, cmd.run(context.Background(), &out))

	assert.Contains(t, out.String(), "200 allocations")
	assert.Contains(t, out.String(), "0 violations")
	assert.Contains(t, out.String(), "bumpstress_arena_allocations_total 200")
}

func TestRunExhausted(t *testing.T) {
	cmd := testCommand()
	cmd.capacity = "1KB"

	var out bytes.Buffer
	err := cmd.run(context.Background(), &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "32 allocations")
}

func TestConfig(t *testing.T) {
	cmd := testCommand()
	cmd.memoryLimit = "2MB"
	cmd.conservative = true

	cfg, err := cmd.config()
	require.NoError(t, err)
	assert.Equal(t, uintptr(1<<20), cfg.Capacity)
	assert.Equal(t, int64(2<<20), cfg.MemoryLimit)
	assert.True(t, cfg.Conservative)

	cmd.capacity = "huge"
	_, err = cmd.config()
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	cmd := testCommand()
	cmd.logFormat = "json"
	l, err := cmd.logger()
	require.NoError(t, err)
	assert.NotNil(t, l)

	cmd.logLevel = "loud"
	_, err = cmd.logger()
	assert.Error(t, err)
}
