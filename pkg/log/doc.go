// Package log provides the structured logging abstraction used across i2p.
//
// Components depend on the Logger interface rather than on a concrete
// logging library. Two implementations ship with the package: a zerolog
// adapter used by the CLI and a no-op logger for tests and embedding.
//
// # Usage
//
//	logger := log.NewConsoleLogger(os.Stderr, "info")
//	logger.Info("registry loaded", log.Int("client_bound", 42))
//
// Or discard everything:
//
//	logger := log.NewNoopLogger()
package log
