package httpserver

import (
	"github.com/scholarseek/scholar-search-service/internal/domain"
)

// Response types for JSON serialization.

type workResponse struct {
	Title          string   `json:"title"`
	Authors        []string `json:"authors"`
	DisplayAuthors []string `json:"display_authors"`
	Year           int      `json:"year,omitempty"`
	Venue          string   `json:"venue,omitempty"`
	CitationCount  int      `json:"citation_count"`
	DOI            string   `json:"doi,omitempty"`
	OpenAlexID     string   `json:"openalex_id"`
}

type authorResponse struct {
	Name          string   `json:"name"`
	ORCID         string   `json:"orcid,omitempty"`
	Institution   string   `json:"institution,omitempty"`
	WorksCount    int      `json:"works_count"`
	CitationCount int      `json:"citation_count"`
	HIndex        int      `json:"h_index"`
	I10Index      int      `json:"i10_index"`
	Concepts      []string `json:"concepts,omitempty"`
	OpenAlexID    string   `json:"openalex_id"`
}

type worksPageResponse struct {
	Works      []workResponse `json:"works"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
}

type authorsPageResponse struct {
	Authors    []authorResponse `json:"authors"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
}

// Converter functions

func workToResponse(w domain.WorkSummary) workResponse {
	return workResponse{
		Title:          w.Title,
		Authors:        w.AuthorNames,
		DisplayAuthors: w.DisplayAuthors(),
		Year:           w.Year,
		Venue:          w.Venue,
		CitationCount:  w.CitationCount,
		DOI:            w.DOI,
		OpenAlexID:     w.OpenAlexID,
	}
}

func authorToResponse(a domain.AuthorSummary) authorResponse {
	return authorResponse{
		Name:          a.Name,
		ORCID:         a.ORCID,
		Institution:   a.Institution,
		WorksCount:    a.WorksCount,
		CitationCount: a.CitationCount,
		HIndex:        a.HIndex,
		I10Index:      a.I10Index,
		Concepts:      a.Concepts,
		OpenAlexID:    a.OpenAlexID,
	}
}

func worksPageToResponse(page *domain.Page[domain.WorkSummary]) worksPageResponse {
	works := make([]workResponse, len(page.Items))
	for i, item := range page.Items {
		works[i] = workToResponse(item)
	}
	return worksPageResponse{
		Works:      works,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PerPage:    page.PerPage,
	}
}

func authorsPageToResponse(page *domain.Page[domain.AuthorSummary]) authorsPageResponse {
	authors := make([]authorResponse, len(page.Items))
	for i, item := range page.Items {
		authors[i] = authorToResponse(item)
	}
	return authorsPageResponse{
		Authors:    authors,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PerPage:    page.PerPage,
	}
}
