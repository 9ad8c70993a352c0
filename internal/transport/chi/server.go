// Package chi hosts the HTTP handlers of the crime API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/crimedex/crimedex/internal/domain"
	curationuc "github.com/crimedex/crimedex/internal/usecase/curation"
	healthuc "github.com/crimedex/crimedex/internal/usecase/health"
	queryuc "github.com/crimedex/crimedex/internal/usecase/query"
)

// Error codes of the API error envelope.
const (
	codeBadRequest       = "bad_request"
	codeInvalidDate      = "invalid_date"
	codeInvalidID        = "invalid_id"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeDuplicateVote    = "duplicate_vote"
	codeDuplicateReport  = "duplicate_report"
	codeInternalError    = "internal_error"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// messageResponse carries the "no results" markers and write confirmations.
// The marker-instead-of-empty-list behavior is part of the observable
// contract of every endpoint that uses it.
type messageResponse struct {
	Message string `json:"message"`
}

// insertResponse confirms a report insert with the assigned identifier.
type insertResponse struct {
	Message string `json:"message"`
	CrimeID string `json:"crime_id"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server hosts the crime API handlers.
type Server struct {
	query         *queryuc.Service
	curation      *curationuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(query *queryuc.Service, curation *curationuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		query:    query,
		curation: curation,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidDate, http.StatusBadRequest, codeInvalidDate),
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, codeInvalidID),
		sentinelHandler(domain.ErrInvalidPayload, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrDuplicateVote, http.StatusBadRequest, codeDuplicateVote),
		sentinelHandler(domain.ErrDuplicateReport, http.StatusBadRequest, codeDuplicateReport),
	}
	return s
}

// Routes mounts every API route on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/random_crime", s.RandomCrime)
	r.Get("/api/crimes/count-by-code", s.CountByCode)
	r.Get("/api/crimes/daily-count", s.DailyCount)
	r.Get("/api/crimes/most-common", s.MostCommon)
	r.Get("/api/crimes/least-common", s.LeastCommon)
	r.Get("/api/crimes/weapons-used", s.WeaponsUsed)
	r.Post("/api/crimes/upvote", s.Upvote)
	r.Get("/api/crimes/top-upvoted", s.TopUpvoted)
	r.Post("/api/crimes/insert", s.InsertReport)
	r.Get("/api/officers/top-active", s.TopActiveOfficers)
	r.Get("/api/officers/top-by-area", s.OfficersByArea)
	r.Get("/api/officers/upvoted-areas", s.UpvotedAreas)
	r.Get("/api/upvotes/multiple-badge", s.MultiBadge)

	r.Get("/healthz", s.Liveness)
	r.Get("/readyz", s.Readiness)
}

// RandomCrime handles GET /api/random_crime.
func (s *Server) RandomCrime(w http.ResponseWriter, r *http.Request) {
	crime, err := s.query.RandomCrime(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, crime)
}

// CountByCode handles GET /api/crimes/count-by-code.
func (s *Server) CountByCode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	counts, err := s.query.CountByCode(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(counts))
}

// DailyCount handles GET /api/crimes/daily-count.
func (s *Server) DailyCount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crimeCode, err := strconv.Atoi(q.Get("crime_code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "crime_code must be an integer")
		return
	}

	series, err := s.query.DailyCounts(r.Context(), crimeCode, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(series))
}

// MostCommon handles GET /api/crimes/most-common.
func (s *Server) MostCommon(w http.ResponseWriter, r *http.Request) {
	areas, err := s.query.MostCommonByArea(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(areas))
}

// LeastCommon handles GET /api/crimes/least-common.
func (s *Server) LeastCommon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crimes, err := s.query.LeastCommon(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(crimes))
}

// WeaponsUsed handles GET /api/crimes/weapons-used.
func (s *Server) WeaponsUsed(w http.ResponseWriter, r *http.Request) {
	crimeCode, err := strconv.Atoi(r.URL.Query().Get("crime_code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "crime_code must be an integer")
		return
	}

	areas, err := s.query.WeaponsUsed(r.Context(), crimeCode)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if len(areas) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: "No weapon data found for the given crime code"})
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

// Upvote handles POST /api/crimes/upvote.
func (s *Server) Upvote(w http.ResponseWriter, r *http.Request) {
	var req curationuc.UpvoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.curation.Upvote(r.Context(), req); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Upvote registered successfully"})
}

// TopUpvoted handles GET /api/crimes/top-upvoted.
func (s *Server) TopUpvoted(w http.ResponseWriter, r *http.Request) {
	reports, err := s.curation.TopUpvoted(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if len(reports) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: "No upvoted reports found for the given date"})
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

// InsertReport handles POST /api/crimes/insert.
func (s *Server) InsertReport(w http.ResponseWriter, r *http.Request) {
	var report domain.Crime
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.curation.InsertReport(r.Context(), report)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insertResponse{
		Message: "Crime report inserted successfully",
		CrimeID: id,
	})
}

// TopActiveOfficers handles GET /api/officers/top-active.
func (s *Server) TopActiveOfficers(w http.ResponseWriter, r *http.Request) {
	officers, err := s.curation.TopActiveOfficers(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if len(officers) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: "No officer upvote data found"})
		return
	}
	writeJSON(w, http.StatusOK, officers)
}

// OfficersByArea handles GET /api/officers/top-by-area.
func (s *Server) OfficersByArea(w http.ResponseWriter, r *http.Request) {
	officers, err := s.curation.AreaCoverage(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if len(officers) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: "No officer area data found"})
		return
	}
	writeJSON(w, http.StatusOK, officers)
}

// UpvotedAreas handles GET /api/officers/upvoted-areas.
func (s *Server) UpvotedAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.curation.UpvotedAreas(r.Context(), r.URL.Query().Get("officer_name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if len(areas) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: "No upvoted areas found for the given officer name"})
		return
	}
	writeJSON(w, http.StatusOK, areas)
}

// MultiBadge handles GET /api/upvotes/multiple-badge.
func (s *Server) MultiBadge(w http.ResponseWriter, r *http.Request) {
	anomalies, err := s.curation.MultiBadge(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if len(anomalies) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: "No duplicate badge upvotes found"})
		return
	}
	writeJSON(w, http.StatusOK, anomalies)
}

// Liveness handles GET /healthz.
func (s *Server) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /readyz.
func (s *Server) Readiness(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// safeDomainMessage returns the sentinel message for known errors and a
// generic message otherwise, so internals never leak to clients.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidDate,
		domain.ErrInvalidID,
		domain.ErrInvalidPayload,
		domain.ErrNotFound,
		domain.ErrDuplicateVote,
		domain.ErrDuplicateReport,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// emptyIfNil keeps legitimately empty list answers serializing as [] rather
// than null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
