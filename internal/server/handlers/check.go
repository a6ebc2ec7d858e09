package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/namelens/handlescan/internal/core"
	"github.com/namelens/handlescan/internal/core/checker"
	"github.com/namelens/handlescan/internal/core/engine"
	apperrors "github.com/namelens/handlescan/internal/errors"
)

const maxCheckBodyBytes = 1 << 20

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	Queries     []string `json:"queries"`
	Platforms   []string `json:"platforms,omitempty"`
	PrimeTokens bool     `json:"prime_tokens,omitempty"`
}

// CheckResponse lists every response in query-major order with a tally.
type CheckResponse struct {
	Responses []*core.Response `json:"responses"`
	Summary   core.Summary     `json:"summary"`
}

// CheckService runs batches for the HTTP API. Each request gets its own
// registry so token caches never outlive one batch.
type CheckService struct {
	Session     *checker.Session
	Concurrency int
	MaxQueries  int
	Logger      *logging.Logger
}

// CheckHandler handles POST /v1/check.
func (s *CheckService) CheckHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			respondWithError(w, r, apperrors.Wrap(r.Context(), apperrors.CodePayloadTooLarge, err, "request body too large"))
			return
		}
		respondWithError(w, r, apperrors.Wrap(r.Context(), apperrors.CodeInvalidInput, err, "request body must be a JSON check request"))
		return
	}

	queries := core.NormalizeQueries(req.Queries)
	if len(queries) == 0 {
		respondWithError(w, r, apperrors.NewValidationError("at least one query is required"))
		return
	}
	if s.MaxQueries > 0 && len(queries) > s.MaxQueries {
		respondWithError(w, r, apperrors.NewValidationError(fmt.Sprintf("at most %d queries are accepted per request", s.MaxQueries)))
		return
	}

	platforms, err := core.ParsePlatforms(req.Platforms)
	if err != nil {
		respondWithError(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	registry, err := checker.NewRegistry(s.Session, platforms)
	if err != nil {
		respondWithError(w, r, apperrors.Wrap(r.Context(), apperrors.CodeInternal, err, "failed to build checkers"))
		return
	}

	orchestrator := &engine.Orchestrator{
		Dispatcher:  &engine.Dispatcher{Registry: registry, Logger: s.Logger},
		Concurrency: s.Concurrency,
		PrimeTokens: req.PrimeTokens,
		Logger:      s.Logger,
	}

	start := time.Now()
	responses, err := orchestrator.Run(r.Context(), queries, platforms)
	if err != nil {
		respondWithError(w, r, apperrors.FromRunError(r.Context(), err))
		return
	}
	summary := core.Summarize(responses, time.Since(start))

	if s.Logger != nil {
		s.Logger.Info("Check batch completed",
			zap.Int("queries", len(queries)),
			zap.Int("platforms", len(platforms)),
			zap.Int("responses", summary.Responses),
			zap.Int("failed", summary.Failed),
			zap.Duration("elapsed", summary.Elapsed))
	}

	if responses == nil {
		responses = []*core.Response{}
	}
	writeJSON(w, http.StatusOK, CheckResponse{Responses: responses, Summary: summary})
}

// PlatformInfo describes one supported platform and what it can check.
type PlatformInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Username    bool   `json:"username"`
	Email       bool   `json:"email"`
	Token       bool   `json:"token"`
}

// DescribePlatforms lists every supported platform with its capabilities.
func DescribePlatforms() []PlatformInfo {
	platforms := core.AllPlatforms()
	infos := make([]PlatformInfo, 0, len(platforms))
	for _, platform := range platforms {
		caps, _ := checker.Describe(platform)
		infos = append(infos, PlatformInfo{
			Name:        string(platform),
			DisplayName: platform.DisplayName(),
			Username:    caps.Username,
			Email:       caps.Email,
			Token:       caps.Prerequest,
		})
	}
	return infos
}

// PlatformsHandler handles GET /v1/platforms.
func PlatformsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"platforms": DescribePlatforms()})
}
