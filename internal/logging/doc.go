// Package logging provides structured logging for tablekit.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used by the list engine and its collaborators.
//
// # Log Levels
//
//   - Debug: Row materialization, contents replacement, widget transitions,
//     programmer-error reports from the diag package
//   - Info: Server lifecycle, discovery results
//   - Warn: Non-fatal collaborator failures (pasteboard, availability)
//   - Error: Startup failures
//
// # Configuration
//
// Logging is silent unless a level is supplied, either explicitly or through
// the TABLEKIT_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The interactive surface owns the terminal, so logs go to stderr or to the
// file named by TABLEKIT_LOG_FILE.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Replacing the logger with
// SetLogger is not, and belongs in process setup or test setup.
package logging
