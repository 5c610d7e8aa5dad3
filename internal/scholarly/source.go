// Package scholarly provides the abstractions shared by scholarly-database
// clients: the Source interface, a rate-limited HTTP client, and the token
// bucket limiter the client uses.
//
// Each catalog (OpenAlex today, others later) implements Source, so the
// HTTP handlers and the CLI stay independent of which catalog serves a
// search.
//
// Example usage:
//
//	src := openalex.New(cfg)
//	req, err := domain.NewSearchRequest("CRISPR gene editing", domain.ResourceWorks, 25, 1)
//	if err != nil { ... }
//	page, err := src.SearchWorks(ctx, req)
package scholarly

import (
	"context"

	"github.com/scholarseek/scholar-search-service/internal/domain"
)

// Source is the interface a scholarly catalog client must implement.
type Source interface {
	// SearchWorks queries the catalog's works collection. Result ordering
	// is preserved exactly as the catalog returned it.
	// The context should be used for cancellation and deadline propagation.
	SearchWorks(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error)

	// SearchAuthors queries the catalog's authors collection.
	SearchAuthors(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.AuthorSummary], error)

	// Name returns a human-readable name for this catalog.
	// Used for logging, metrics, and error attribution.
	Name() string

	// IsEnabled returns whether this catalog is currently enabled and
	// available for searches.
	IsEnabled() bool
}
