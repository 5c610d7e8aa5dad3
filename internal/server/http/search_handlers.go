package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/scholarseek/scholar-search-service/internal/domain"
	"github.com/scholarseek/scholar-search-service/internal/observability"
)

// searchWorks handles GET /api/v1/works/search.
// Query parameters: q (required), per_page (clamped into [5,50]), page (>= 1).
func (s *Server) searchWorks(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseSearchRequest(w, r, domain.ResourceWorks)
	if !ok {
		return
	}

	start := time.Now()
	s.recordStarted(req)

	page, err := s.source.SearchWorks(r.Context(), req)
	if err != nil {
		s.recordFailed(req, err)
		s.logSearchError(r.Context(), req, err)
		writeDomainError(w, err)
		return
	}

	s.recordCompleted(req, time.Since(start), len(page.Items))
	writeJSON(w, http.StatusOK, worksPageToResponse(page))
}

// searchAuthors handles GET /api/v1/authors/search.
// Same query parameters as the works endpoint.
func (s *Server) searchAuthors(w http.ResponseWriter, r *http.Request) {
	req, ok := s.parseSearchRequest(w, r, domain.ResourceAuthors)
	if !ok {
		return
	}

	start := time.Now()
	s.recordStarted(req)

	page, err := s.source.SearchAuthors(r.Context(), req)
	if err != nil {
		s.recordFailed(req, err)
		s.logSearchError(r.Context(), req, err)
		writeDomainError(w, err)
		return
	}

	s.recordCompleted(req, time.Since(start), len(page.Items))
	writeJSON(w, http.StatusOK, authorsPageToResponse(page))
}

// parseSearchRequest reads and validates the search query parameters.
// On failure it writes the error response and returns ok=false.
func (s *Server) parseSearchRequest(w http.ResponseWriter, r *http.Request, resource domain.Resource) (domain.SearchRequest, bool) {
	q := r.URL.Query()

	perPage, err := parseIntParam(q.Get("per_page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "per_page must be an integer")
		return domain.SearchRequest{}, false
	}

	page, err := parseIntParam(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer")
		return domain.SearchRequest{}, false
	}

	req, err := domain.NewSearchRequest(q.Get("q"), resource, perPage, page)
	if err != nil {
		writeDomainError(w, err)
		return domain.SearchRequest{}, false
	}

	return req, true
}

// parseIntParam parses an optional integer query parameter; empty means 0.
func parseIntParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// writeDomainError maps domain errors onto HTTP status codes. Failures are
// local to the request; nothing here affects subsequent searches.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "search query must not be empty")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrMalformedResponse):
		writeError(w, http.StatusBadGateway, "upstream returned an unexpected payload")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "upstream request timed out")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "upstream rate limit exceeded, try again later")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusBadGateway, "upstream service unavailable")
	case isExternalAPIError(err):
		writeError(w, http.StatusBadGateway, "upstream request failed")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isExternalAPIError(err error) bool {
	var apiErr *domain.ExternalAPIError
	return errors.As(err, &apiErr)
}

// errorKind buckets an error for the failure metric label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrServiceUnavailable), isExternalAPIError(err):
		return "upstream"
	default:
		return "internal"
	}
}

func (s *Server) recordStarted(req domain.SearchRequest) {
	if s.metrics != nil {
		s.metrics.RecordSearchStarted(string(req.Resource))
	}
}

func (s *Server) recordCompleted(req domain.SearchRequest, elapsed time.Duration, results int) {
	if s.metrics != nil {
		s.metrics.RecordSearchCompleted(string(req.Resource), elapsed.Seconds(), results)
	}
}

func (s *Server) recordFailed(req domain.SearchRequest, err error) {
	if s.metrics != nil {
		s.metrics.RecordSearchFailed(string(req.Resource), errorKind(err))
	}
}

func (s *Server) logSearchError(ctx context.Context, req domain.SearchRequest, err error) {
	s.logger.Error().
		Err(err).
		Str("correlation_id", observability.CorrelationIDFromContext(ctx)).
		Str("query", req.Query).
		Str("resource", string(req.Resource)).
		Int("page", req.Page).
		Int("per_page", req.PerPage).
		Msg("search failed")
}
