package openalex

import (
	"encoding/json"
	"io"

	"github.com/scholarseek/scholar-search-service/internal/domain"
)

// maxResponseBytes bounds how much of a response is decoded, guarding
// against resource exhaustion from a misbehaving upstream.
const maxResponseBytes = 10 << 20

// DecodeWorksPage decodes a works search payload and renders each result
// into a WorkSummary. A payload whose top-level results list is absent
// fails the whole page with ErrMalformedResponse; no partial page is
// returned. A results list shorter than the requested page size is not an
// error, it simply means the total ran out before the page filled.
func DecodeWorksPage(r io.Reader, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error) {
	var resp WorksResponse
	if err := json.NewDecoder(io.LimitReader(r, maxResponseBytes)).Decode(&resp); err != nil {
		return nil, domain.NewMalformedResponseError(sourceName, "decoding works payload: "+err.Error())
	}
	if resp.Results == nil {
		return nil, domain.NewMalformedResponseError(sourceName, "missing top-level results list")
	}

	items := make([]domain.WorkSummary, 0, len(resp.Results))
	for i := range resp.Results {
		items = append(items, workToSummary(&resp.Results[i]))
	}

	return &domain.Page[domain.WorkSummary]{
		Items:      items,
		TotalCount: resp.Meta.Count,
		Page:       req.Page,
		PerPage:    req.PerPage,
	}, nil
}

// DecodeAuthorsPage decodes an authors search payload and renders each
// result into an AuthorSummary. The same contract as DecodeWorksPage
// applies: a missing results list aborts the whole page.
func DecodeAuthorsPage(r io.Reader, req domain.SearchRequest) (*domain.Page[domain.AuthorSummary], error) {
	var resp AuthorsResponse
	if err := json.NewDecoder(io.LimitReader(r, maxResponseBytes)).Decode(&resp); err != nil {
		return nil, domain.NewMalformedResponseError(sourceName, "decoding authors payload: "+err.Error())
	}
	if resp.Results == nil {
		return nil, domain.NewMalformedResponseError(sourceName, "missing top-level results list")
	}

	items := make([]domain.AuthorSummary, 0, len(resp.Results))
	for i := range resp.Results {
		items = append(items, authorToSummary(&resp.Results[i]))
	}

	return &domain.Page[domain.AuthorSummary]{
		Items:      items,
		TotalCount: resp.Meta.Count,
		Page:       req.Page,
		PerPage:    req.PerPage,
	}, nil
}

// workToSummary converts an OpenAlex work to a WorkSummary. Every nested
// field is read defensively: an absent field yields the zero value rather
// than failing the page.
func workToSummary(work *Work) domain.WorkSummary {
	// Prefer display_name, it is usually cleaner than title.
	title := work.DisplayName
	if title == "" {
		title = work.Title
	}

	authorNames := make([]string, 0, len(work.Authorships))
	for _, authorship := range work.Authorships {
		if name := authorship.Author.DisplayName; name != "" {
			authorNames = append(authorNames, name)
		}
	}

	var venue string
	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil {
		venue = work.PrimaryLocation.Source.DisplayName
	}

	return domain.WorkSummary{
		Title:         title,
		AuthorNames:   authorNames,
		Year:          work.PublicationYear,
		Venue:         venue,
		CitationCount: work.CitedByCount,
		DOI:           work.DOI,
		OpenAlexID:    work.ID,
	}
}

// authorToSummary converts an OpenAlex author to an AuthorSummary.
// Citation metrics default to 0 when summary_stats is absent.
func authorToSummary(author *Author) domain.AuthorSummary {
	summary := domain.AuthorSummary{
		Name:          author.DisplayName,
		ORCID:         author.Orcid,
		WorksCount:    author.WorksCount,
		CitationCount: author.CitedByCount,
		OpenAlexID:    author.ID,
	}

	if author.SummaryStats != nil {
		summary.HIndex = author.SummaryStats.HIndex
		summary.I10Index = author.SummaryStats.I10Index
	}

	if author.LastKnownInstitution != nil {
		summary.Institution = author.LastKnownInstitution.DisplayName
	} else if len(author.LastKnownInstitutions) > 0 {
		summary.Institution = author.LastKnownInstitutions[0].DisplayName
	}

	if len(author.XConcepts) > 0 {
		concepts := make([]string, 0, domain.MaxDisplayConcepts)
		for _, c := range author.XConcepts {
			if c.DisplayName == "" {
				continue
			}
			concepts = append(concepts, c.DisplayName)
			if len(concepts) == domain.MaxDisplayConcepts {
				break
			}
		}
		summary.Concepts = concepts
	}

	return summary
}
