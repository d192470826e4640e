// Package logging builds the structured zap loggers used across pkgscout.
//
// Two encodings are supported:
//   - Production: JSON lines, suitable for a log file next to the data dir
//   - Development: console encoding for humans
//
// The terminal UI owns stdout, so app.Run logs to <data_dir>/pkgscout.log
// unless configured otherwise. Components accept a *zap.Logger and use
// OrNop when none is supplied.
//
// Example:
//
//	logger := logging.NewOrNop(logging.FileConfig("debug", "/tmp/pkgscout.log"))
//	logger.Info("lookup settled", zap.String("query", q), zap.Int("results", n))
package logging
