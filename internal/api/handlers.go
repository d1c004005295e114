// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/squadmatch/internal/config"
	"github.com/tomtom215/squadmatch/internal/logging"
	"github.com/tomtom215/squadmatch/internal/match"
	"github.com/tomtom215/squadmatch/internal/metrics"
	"github.com/tomtom215/squadmatch/internal/models"
)

// requestTimeout bounds every match computation triggered over HTTP.
const requestTimeout = 10 * time.Second

// MatchService is the matching core as seen by the HTTP layer.
type MatchService interface {
	ComputeOne(ctx context.Context, viewerID, targetID models.UserID) (*models.MatchResult, error)
	Candidates(ctx context.Context, viewerID models.UserID) ([]models.UserID, error)
	ComputeBatch(ctx context.Context, viewerID models.UserID) ([]models.MatchSummary, error)
}

// ResultCache is the optional pair-result cache in front of the
// matching core.
type ResultCache interface {
	GetMatch(ctx context.Context, viewerID, targetID models.UserID) (*models.MatchResult, bool)
	PutMatch(ctx context.Context, viewerID, targetID models.UserID, result *models.MatchResult) error
	InvalidateUser(ctx context.Context, id models.UserID) error
}

// UserWriter persists classification and schedule updates.
type UserWriter interface {
	SaveTraits(ctx context.Context, id models.UserID, t *models.TraitsContext) error
	ReplaceSlots(ctx context.Context, id models.UserID, slots []models.ScheduleSlot) error
}

// Pinger reports storage health for the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler implements every HTTP endpoint. Cache and writer are
// optional; a nil cache disables result caching and a nil writer makes
// classification a pure computation.
type Handler struct {
	matcher    MatchService
	classifier *match.Classifier
	questions  match.QuestionSet
	cache      ResultCache
	writer     UserWriter
	health     Pinger
	cfg        config.APIConfig
}

// NewHandler builds the endpoint handler.
func NewHandler(matcher MatchService, cache ResultCache, writer UserWriter, health Pinger, cfg config.APIConfig) *Handler {
	return &Handler{
		matcher:    matcher,
		classifier: match.NewClassifier(),
		questions:  match.DefaultQuestionSet(),
		cache:      cache,
		writer:     writer,
		health:     health,
		cfg:        cfg,
	}
}

// HealthLive always reports success while the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"}, time.Now(), false)
}

// HealthReady reports success only when storage answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.health.Ping(ctx); err != nil {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "storage not ready", nil)
			return
		}
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"}, start, false)
}

// Archetypes returns the fixed catalog with ideal vectors.
func (h *Handler) Archetypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, match.Catalog(), time.Now(), false)
}

// Questions returns the classification questionnaire.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.questions, time.Now(), false)
}

// classifyResponse is the payload of POST /classify.
type classifyResponse struct {
	Vector    models.TraitVector `json:"vector"`
	Archetype models.Archetype   `json:"archetype"`
	Name      string             `json:"archetype_name"`
	Persisted bool               `json:"persisted"`
}

// Classify scores questionnaire answers into a trait vector and
// archetype. With a user_id the result is persisted and that user's
// cached matches are invalidated.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	answers := make([]match.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = match.Answer{QuestionID: a.QuestionID, OptionID: a.OptionID}
	}

	vector := h.classifier.ClipRadial(h.classifier.Accumulate(answers, h.questions))
	entry := h.classifier.Classify(vector)
	metrics.RecordClassification(string(entry.Slug))

	resp := classifyResponse{
		Vector:    vector,
		Archetype: entry.Slug,
		Name:      entry.Name,
	}

	if req.UserID != "" && h.writer != nil {
		id := models.UserID(req.UserID)
		traits := &models.TraitsContext{Vector: vector, Archetype: entry.Slug}
		if err := h.writer.SaveTraits(r.Context(), id, traits); err != nil {
			log := logging.Ctx(r.Context())
			log.Error().Err(err).Msg("Failed to persist traits")
			respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to persist classification", nil)
			return
		}
		resp.Persisted = true
		h.invalidate(r.Context(), id)
	}

	respondJSON(w, r, http.StatusOK, resp, start, false)
}

// Match computes the compatibility result for one viewer/target pair,
// serving from the result cache when possible.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	viewerID := models.UserID(chi.URLParam(r, "viewerID"))
	targetID := models.UserID(chi.URLParam(r, "targetID"))
	if viewerID == "" || targetID == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "viewer and target ids are required", nil)
		return
	}
	if viewerID == targetID {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "cannot match a user against themselves", nil)
		return
	}

	if h.cache != nil {
		if result, ok := h.cache.GetMatch(r.Context(), viewerID, targetID); ok {
			respondJSON(w, r, http.StatusOK, result, start, true)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.matcher.ComputeOne(ctx, viewerID, targetID)
	metrics.RecordMatchComputation("single", time.Since(start), scoreOf(result), err)
	if err != nil {
		h.respondComputeError(w, r, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.PutMatch(r.Context(), viewerID, targetID, result); err != nil {
			log := logging.Ctx(r.Context())
			log.Warn().Err(err).Msg("Failed to cache match result")
		}
	}
	respondJSON(w, r, http.StatusOK, result, start, false)
}

// Candidates returns the filtered candidate pool for a viewer.
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	viewerID := models.UserID(chi.URLParam(r, "viewerID"))
	if viewerID == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "viewer id is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	candidates, err := h.matcher.Candidates(ctx, viewerID)
	if err != nil {
		h.respondComputeError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, candidates, start, false)
}

// Batch evaluates the viewer against their whole candidate pool and
// returns a page of summaries ordered as the pool enumerates.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	viewerID := models.UserID(chi.URLParam(r, "viewerID"))
	if viewerID == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "viewer id is required", nil)
		return
	}

	req := BatchRequest{
		Limit:  getIntParam(r, "limit", h.cfg.DefaultPageSize),
		Offset: getIntParam(r, "offset", 0),
	}
	if req.Limit > h.cfg.MaxPageSize {
		req.Limit = h.cfg.MaxPageSize
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summaries, err := h.matcher.ComputeBatch(ctx, viewerID)
	metrics.RecordMatchComputation("batch", time.Since(start), 0, err)
	if err != nil {
		h.respondComputeError(w, r, err)
		return
	}

	page := summaries
	if req.Offset >= len(page) {
		page = []models.MatchSummary{}
	} else {
		page = page[req.Offset:]
		if len(page) > req.Limit {
			page = page[:req.Limit]
		}
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"matches": page,
		"total":   len(summaries),
		"offset":  req.Offset,
		"limit":   req.Limit,
	}, start, false)
}

// UpdateSchedule replaces a user's recurring availability slots.
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.writer == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "schedule updates are not available", nil)
		return
	}
	id := models.UserID(chi.URLParam(r, "userID"))
	if id == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "user id is required", nil)
		return
	}

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	if err := h.writer.ReplaceSlots(r.Context(), id, req.toModel()); err != nil {
		log := logging.Ctx(r.Context())
		log.Error().Err(err).Msg("Failed to update schedule")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to update schedule", nil)
		return
	}
	h.invalidate(r.Context(), id)
	respondJSON(w, r, http.StatusOK, map[string]int{"slots": len(req.Slots)}, start, false)
}

func (h *Handler) invalidate(ctx context.Context, id models.UserID) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateUser(ctx, id); err != nil {
		log := logging.Ctx(ctx)
		log.Warn().Err(err).Str("user_id", string(id)).Msg("Failed to invalidate cached matches")
	}
}

// respondComputeError maps matching-core failures to HTTP statuses. An
// open circuit breaker is a 503 so clients back off instead of
// retrying into a struggling store.
func (h *Handler) respondComputeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "matching temporarily unavailable", nil)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeUnavailable, "match computation timed out", nil)
		return
	}
	log := logging.Ctx(r.Context())
	log.Error().Err(err).Msg("Match computation failed")
	respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "match computation failed", nil)
}

func scoreOf(result *models.MatchResult) int {
	if result == nil {
		return 0
	}
	return result.Score
}
