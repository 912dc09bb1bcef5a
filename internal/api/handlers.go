package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/serenpaths/seren/internal/config"
	"github.com/serenpaths/seren/internal/engine"
	"github.com/serenpaths/seren/internal/enrich"
	"github.com/serenpaths/seren/internal/types"
	"github.com/serenpaths/seren/internal/validation"
	"github.com/serenpaths/seren/internal/viz"
)

// Handler implements the API handlers
type Handler struct {
	engine   *engine.Engine
	enricher enrich.Enricher
	feedback *engine.FeedbackLog
	ai       config.AIConfig
	version  string
}

// NewHandler creates a new Handler.
func NewHandler(eng *engine.Engine, enricher enrich.Enricher, feedback *engine.FeedbackLog, ai config.AIConfig, version string) *Handler {
	return &Handler{
		engine:   eng,
		enricher: enricher,
		feedback: feedback,
		ai:       ai,
		version:  version,
	}
}

// Root returns the service banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"service": "Seren Paths API",
		"tagline": "Recommendations that lead you away from your comfort zone",
		"version": h.version,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := types.HealthResponse{
		Status:         "healthy",
		Version:        h.version,
		ChallengeCount: h.engine.Catalog().Size(),
		Enricher:       h.enricher.Name(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Recommend handles POST /api/v1/recommendations
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidatePreferences(req.Preferences); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	challenge, err := h.engine.Recommend(req.Level, req.Preferences, req.Experiences)
	if err != nil {
		MapEngineError(w, r, err)
		return
	}

	challenge = h.maybeEnrich(r, challenge, req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(challenge)
}

// maybeEnrich applies AI enrichment when configured. Any enrichment
// failure leaves the catalog pick untouched; the endpoint never fails
// because the model did.
func (h *Handler) maybeEnrich(r *http.Request, challenge types.EnhancedChallenge, req types.RecommendationRequest) types.EnhancedChallenge {
	if !h.enricher.Enabled() {
		return challenge
	}

	ctx := r.Context()
	profile := h.engine.Analyze(req.Experiences)

	// Rich histories occasionally get a fully generated challenge in
	// place of the catalog pick. The draw shares the engine's random
	// source so seeded tests stay reproducible.
	if len(req.Experiences) > h.ai.MinHistoryForCustom && h.engine.Chance(h.ai.CustomChallengeOdds) {
		custom, err := h.enricher.SuggestChallenge(ctx, req.Preferences, req.Experiences, req.Level)
		switch {
		case err != nil:
			slog.Warn("custom challenge generation failed", "error", err)
		case custom != nil:
			enhanced := h.engine.Enhance(custom.Challenge, profile)
			enhanced.Encouragement = custom.Encouragement
			enhanced.AIEnhanced = true
			return enhanced
		}
	}

	enriched, err := h.enricher.EnhanceChallenge(ctx, challenge, profile)
	if err != nil {
		slog.Warn("challenge enrichment failed", "error", err, "title", challenge.Title)
		return challenge
	}
	return enriched
}

// Feedback handles POST /api/v1/feedback
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidateFeedbackRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	entry := h.feedback.Record(UserIDFromContext(r.Context()), req.ExperienceID, req.Feedback)

	resp := types.FeedbackAck{
		ID:         entry.ID,
		Status:     "recorded",
		RecordedAt: entry.RecordedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// UpdatePreferences handles POST /api/v1/preferences/update
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req types.PreferencesUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	resp := h.engine.UpdatePreferences(req.Experiences)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Visualization handles POST /api/v1/visualization
func (h *Handler) Visualization(w http.ResponseWriter, r *http.Request) {
	var req types.VisualizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	resp := viz.Generate(req.Experiences)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
