// Package logging builds the process logger and carries request-scoped
// loggers through context.
//
// Records logged with a context that holds a valid span also get trace_id and
// span_id attributes, so log lines can be joined with exported traces.
//
//	logger := logging.NewLogger(os.Stdout, "info", "json")
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.FromContext(ctx).InfoContext(ctx, "article created", slog.Int64("id", id))
//	}
package logging
