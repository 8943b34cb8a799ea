// Package logger builds slog loggers for the composer, the preview server
// and the CLI.
//
// Loggers are JSON (or text) handlers wrapped by LogHandlerDecorator, which
// adds attributes pulled from the context on every call:
//
//	log := logger.New(logger.Config{Level: "debug"}, logger.ContextAttrs)
//
//	ctx = logger.WithAttrs(ctx, slog.String("view", "welcome"))
//	log.InfoContext(ctx, "message sent")
//	// {"level":"INFO","msg":"message sent","ctx":{"view":"welcome"}}
//
// NewWithSentry additionally forwards warnings and errors to Sentry when a
// DSN is configured, falling back to stdout-only logging otherwise.
// NewNope returns a logger that discards everything; libraries use it as
// their default.
package logger
