package log

import (
	"sync"
	"testing"
)

// swapDefault resets the package-level logger for a test and restores it on
// cleanup so tests do not leak into each other.
func swapDefault(t *testing.T, logger *Logger) {
	t.Helper()
	original := defaultLogger
	defaultLogger = logger
	t.Cleanup(func() {
		defaultLogger = original
	})
}

func TestSetDefaultLogger(t *testing.T) {
	swapDefault(t, nil)

	custom := Development()
	SetDefaultLogger(custom)

	if defaultLogger != custom {
		t.Error("SetDefaultLogger did not set the default logger")
	}
	if got := DefaultLogger(); got != custom {
		t.Error("DefaultLogger did not return the installed logger")
	}
}

func TestDefaultLogger(t *testing.T) {
	t.Run("returns installed logger", func(t *testing.T) {
		swapDefault(t, nil)

		custom := Production()
		SetDefaultLogger(custom)

		if got := DefaultLogger(); got != custom {
			t.Error("DefaultLogger did not return the installed logger")
		}
	})

	t.Run("lazily creates a logger when none installed", func(t *testing.T) {
		swapDefault(t, nil)

		logger := DefaultLogger()
		if logger == nil {
			t.Fatal("DefaultLogger returned nil when no default was set")
		}
		if defaultLogger != logger {
			t.Error("DefaultLogger did not install the lazily created logger")
		}
		if DefaultLogger() != logger {
			t.Error("DefaultLogger did not return the same logger on second call")
		}
	})
}

func TestDefaultLoggerConcurrency(t *testing.T) {
	swapDefault(t, nil)

	const goroutines = 100
	loggers := make([]*Logger, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(index int) {
			defer wg.Done()
			loggers[index] = DefaultLogger()
		}(i)
	}
	wg.Wait()

	first := loggers[0]
	for i := 1; i < goroutines; i++ {
		if loggers[i] != first {
			t.Errorf("logger at index %d differs from the first logger", i)
		}
	}
}
