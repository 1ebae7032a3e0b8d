// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Log output goes to stderr; stdout is reserved for job status records.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	if err != nil {
//	    return err
//	}
//	log := logger.ForJob("provision", runID)
//	log.Warn("skipping bot", zap.String("bot", name), zap.Error(err))
package logging
