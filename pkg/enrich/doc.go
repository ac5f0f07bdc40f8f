// Package enrich attaches friendly exception messages to slog records.
//
// [Handler] is a [slog.Handler] middleware. When a record carries an
// error-valued attribute and no attribute named after the configured
// property (default "FriendlyException"), the handler converts the error
// with [exception.FromError], renders it with
// [exception.Flattener.ToFriendlyMessage], and adds the result as a string
// attribute before passing the record on.
//
// Optionally the handler also prepares the exception for serialization
// (exporting the cached trace as "AsyncFriendlyStackTrace") and adds an
// OpenTelemetry "exception" event to the span found in the record's
// context.
//
// # Usage
//
//	logger := slog.New(enrich.WithFriendlyException(slog.NewJSONHandler(os.Stdout, nil)))
//	logger.Error("payment failed", "error", err)
//
// With configuration loaded from FRIENDLY_* environment variables and an
// optional file:
//
//	cfg, err := enrich.LoadConfig("enrichers.yaml")
//	if err != nil {
//	    return err
//	}
//	logger, err := enrich.NewLogger(slog.NewJSONHandler(os.Stdout, nil), cfg)
package enrich
