// Package domain provides domain models and business logic for the scholar search service.
package domain

import "strings"

// Resource identifies which OpenAlex collection a search targets.
type Resource string

const (
	// ResourceWorks searches the works (papers) collection.
	ResourceWorks Resource = "works"
	// ResourceAuthors searches the authors collection.
	ResourceAuthors Resource = "authors"
)

// IsValid returns true if the resource is a known collection.
func (r Resource) IsValid() bool {
	switch r {
	case ResourceWorks, ResourceAuthors:
		return true
	default:
		return false
	}
}

// Page size bounds exposed to the UI slider.
const (
	// MinPerPage is the smallest allowed page size.
	MinPerPage = 5
	// MaxPerPage is the largest allowed page size.
	MaxPerPage = 50
	// DefaultPerPage is the page size used when the caller supplies none.
	DefaultPerPage = 10
)

// SearchRequest is a validated, normalized search. Construct it with
// NewSearchRequest; a zero SearchRequest is not valid.
type SearchRequest struct {
	// Query is the free-text search term, trimmed and non-empty.
	Query string

	// Resource selects the works or authors collection.
	Resource Resource

	// PerPage is the requested page size, clamped into [MinPerPage, MaxPerPage].
	PerPage int

	// Page is the 1-indexed page number, coerced to >= 1.
	Page int
}

// NewSearchRequest builds a SearchRequest from raw user input.
// The query is trimmed and rejected with ErrEmptyQuery when blank,
// perPage is clamped into [MinPerPage, MaxPerPage] (0 means DefaultPerPage),
// and page values below 1 are coerced to 1. The function is pure: the same
// inputs always produce the same request.
func NewSearchRequest(query string, resource Resource, perPage, page int) (SearchRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchRequest{}, ErrEmptyQuery
	}
	if !resource.IsValid() {
		return SearchRequest{}, NewValidationError("resource", "must be works or authors")
	}

	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if perPage < MinPerPage {
		perPage = MinPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	if page < 1 {
		page = 1
	}

	return SearchRequest{
		Query:    query,
		Resource: resource,
		PerPage:  perPage,
		Page:     page,
	}, nil
}

// Offset returns the zero-based index of the first result on the requested
// page, computed as (page-1)*perPage.
func (r SearchRequest) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// WorkSummary is the projection of an OpenAlex work rendered by the UI.
// Optional fields hold their zero value when absent from the API response.
type WorkSummary struct {
	// Title of the work, empty when the API reports none.
	Title string

	// AuthorNames lists author display names in authorship order.
	AuthorNames []string

	// Year is the publication year, 0 when unknown.
	Year int

	// Venue is the display name of the primary publication venue.
	Venue string

	// CitationCount is the cited-by count, defaulting to 0.
	CitationCount int

	// DOI is the full DOI URL, empty when the work has none.
	DOI string

	// OpenAlexID is the canonical OpenAlex URL for the work.
	OpenAlexID string
}

// AuthorSummary is the projection of an OpenAlex author rendered by the UI.
type AuthorSummary struct {
	// Name is the author's display name.
	Name string

	// ORCID is the full ORCID URL, empty when the author has none.
	ORCID string

	// Institution is the display name of the last known institution.
	Institution string

	// WorksCount is the number of works attributed to the author.
	WorksCount int

	// CitationCount is the total cited-by count across works.
	CitationCount int

	// HIndex is the author's h-index, defaulting to 0.
	HIndex int

	// I10Index is the author's i10-index, defaulting to 0.
	I10Index int

	// Concepts lists research-area display names in API order.
	Concepts []string

	// OpenAlexID is the canonical OpenAlex URL for the author.
	OpenAlexID string
}

// Page holds one page of search results in the order the API returned them.
// Items may hold fewer entries than PerPage when the total result count
// runs out before the page fills; that is not an error.
type Page[T any] struct {
	// Items are the results for this page, order preserved.
	Items []T

	// TotalCount is the total number of matches reported by the API.
	TotalCount int

	// Page is the 1-indexed page number that was requested.
	Page int

	// PerPage is the page size that was requested.
	PerPage int
}

// MaxDisplayAuthors caps the author names shown per work before
// collapsing the remainder into "et al.".
const MaxDisplayAuthors = 5

// MaxDisplayConcepts caps the research-area names carried per author.
const MaxDisplayConcepts = 5

// DisplayAuthors returns up to MaxDisplayAuthors author names, appending
// "et al." when the work has more. The summary itself keeps all names.
func (w WorkSummary) DisplayAuthors() []string {
	if len(w.AuthorNames) <= MaxDisplayAuthors {
		return w.AuthorNames
	}
	display := make([]string, 0, MaxDisplayAuthors+1)
	display = append(display, w.AuthorNames[:MaxDisplayAuthors]...)
	return append(display, "et al.")
}
