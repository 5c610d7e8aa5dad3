// Package openalex provides a client for the OpenAlex API.
//
// OpenAlex is a free, open catalog of scholarly papers, authors, venues,
// institutions, and concepts. This package implements the scholarly.Source
// interface for searching works and authors.
//
// API Documentation: https://docs.openalex.org/
package openalex

// WorksResponse is the top-level payload from the works search endpoint.
type WorksResponse struct {
	Meta    Meta   `json:"meta"`
	Results []Work `json:"results"`
}

// AuthorsResponse is the top-level payload from the authors search endpoint.
type AuthorsResponse struct {
	Meta    Meta     `json:"meta"`
	Results []Author `json:"results"`
}

// Meta contains result metadata including pagination info.
type Meta struct {
	Count   int `json:"count"`
	DBTime  int `json:"db_response_time_ms"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Work represents an academic work (paper) in OpenAlex.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi"`
	Title           string       `json:"title"`
	DisplayName     string       `json:"display_name"`
	PublicationYear int          `json:"publication_year"`
	CitedByCount    int          `json:"cited_by_count"`
	Authorships     []Authorship `json:"authorships"`
	PrimaryLocation *Location    `json:"primary_location"`
}

// Authorship represents an author's contribution to a work.
type Authorship struct {
	AuthorPosition string    `json:"author_position"`
	Author         AuthorRef `json:"author"`
}

// AuthorRef is the short author record embedded in an authorship.
type AuthorRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Orcid       string `json:"orcid"`
}

// Location represents where a work is available.
type Location struct {
	Source *Source `json:"source"`
}

// Source represents a publication venue (journal, repository, etc.).
type Source struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}

// Author represents a full author record from the authors endpoint.
type Author struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	Orcid        string `json:"orcid"`
	WorksCount   int    `json:"works_count"`
	CitedByCount int    `json:"cited_by_count"`

	SummaryStats *SummaryStats `json:"summary_stats"`

	// LastKnownInstitution is deprecated upstream in favor of the plural
	// form but still served; both are read with the singular preferred.
	LastKnownInstitution  *Institution  `json:"last_known_institution"`
	LastKnownInstitutions []Institution `json:"last_known_institutions"`

	XConcepts []Concept `json:"x_concepts"`
}

// SummaryStats holds an author's citation-impact metrics.
type SummaryStats struct {
	HIndex   int `json:"h_index"`
	I10Index int `json:"i10_index"`
}

// Institution represents an academic institution.
type Institution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Concept represents a research-area tag attached to an author.
type Concept struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}
