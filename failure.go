package bumparena

import (
	"log/slog"
	"os"
)

// FailureHandler is called when an allocation cannot be satisfied.
//
// Out of memory is not recoverable for a memory provider, so handlers are expected
// not to return. If one does, Allocate returns nil.
type FailureHandler func(err *AllocError)

// PanicOnFailure panics with the *AllocError. It is the default handler.
func PanicOnFailure(err *AllocError) {
	panic(err)
}

// ExitOnFailure logs the failure and terminates the process with exit code 2.
// A nil logger logs to stderr.
func ExitOnFailure(logger *Logger) FailureHandler {
	if logger == nil {
		logger = NewTextLogger(slog.LevelError)
	}
	return func(err *AllocError) {
		logger.Error("fatal allocation failure", "error", err)
		os.Exit(2)
	}
}
