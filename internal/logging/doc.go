// Package logging provides structured logging for the tsfix CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels (including a Trace level below Debug for per-rule match output),
// and helpers for testing. All loggers are based on the standard library's
// [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("patched", "file", "src/api.ts", "fixes", 3)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging
