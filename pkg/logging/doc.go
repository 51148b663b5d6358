// Package logging wraps the standard library slog package with opsync
// defaults: structured JSON logging to stderr, environment-based log level
// configuration (LOG_LEVEL), module/version context injection, and source
// location tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("opsync", version)
//
//	    slog.Info("sync starting", "vault", vault, "namespace", ns)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("opsyncd", "v1.0.0", "debug")
//	logger.Info("server starting", "port", 8080)
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given; it defaults to INFO. Supported levels (case-insensitive):
// DEBUG, INFO, WARN/WARNING, ERROR.
package logging
