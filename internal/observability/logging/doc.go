// Package logging builds the slog loggers shared by the API server, the
// importer, and the maintenance worker.
//
// Production binaries log JSON to stdout via NewLogger; NewTextLogger is
// for local runs. LOG_LEVEL=debug lowers the threshold, anything else is
// info. Request handlers thread the logger through the context:
//
//	ctx = logging.WithLogger(ctx, logger)
//	...
//	logging.WithRequestID(ctx, logging.FromContext(ctx)).Info("feed page served")
package logging
