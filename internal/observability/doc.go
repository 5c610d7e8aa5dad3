// Package observability provides logging and metrics support for the
// scholar search service.
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("request_id", reqID).Msg("search started")
//
// Add search context to a logger:
//
//	logger = observability.WithSearchContext(logger, query, "works")
//
// # Metrics
//
// Initialize metrics once at startup:
//
//	metrics := observability.NewMetrics("scholar_search")
//	metrics.RecordSearchStarted("works")
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - request_id: HTTP request identifier
//   - query: the user's search term
//   - resource: the collection searched (works, authors)
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
