package types

import (
	"encoding/json"
	"time"
)

// Challenge represents a single catalog entry: a small real-world activity
// suggestion. Catalog entries are immutable after load.
type Challenge struct {
	Title              string  `json:"title" yaml:"title"`
	Category           string  `json:"category" yaml:"category"`
	Type               string  `json:"type" yaml:"type"`
	Icon               string  `json:"icon" yaml:"icon"`
	Description        string  `json:"description" yaml:"description"`
	EstimatedTime      string  `json:"estimated_time" yaml:"estimated_time"`
	SerendipityScore   float64 `json:"serendipity_score" yaml:"serendipity_score"`
	DiscoveryPotential string  `json:"discovery_potential" yaml:"discovery_potential"`
	Level              int     `json:"level" yaml:"level"`
	Fallback           bool    `json:"fallback,omitempty" yaml:"-"`
	AIGenerated        bool    `json:"ai_generated,omitempty" yaml:"-"`
}

// UserPreferences carries the caller's declared likes and hard exclusions.
// AvoidCategories is a hard filter, never just a scoring penalty.
type UserPreferences struct {
	Interests       []string `json:"interests"`
	AvoidCategories []string `json:"avoidCategories"`
}

// ExperienceRecord is one entry of caller-owned history. The engine never
// mutates or persists these; unknown JSON fields are ignored on decode.
type ExperienceRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Category  string `json:"category"`
	Level     int    `json:"level"`
	Completed bool   `json:"completed"`
}

// UserProfile is the per-request analysis of an experience history.
// AvoidedCategories means "never experienced", not user-declared avoidance.
type UserProfile struct {
	TotalExperiences   int            `json:"total_experiences"`
	FavoriteCategories []string       `json:"favorite_categories"`
	AvoidedCategories  []string       `json:"avoided_categories"`
	DiversityScore     float64        `json:"diversity_score"`
	RecentCategories   []string       `json:"recent_categories"`
	CategoryCounts     map[string]int `json:"category_distribution"`
}

// ScoredCandidate pairs a challenge with its anti-optimization score.
// It exists only during one selection call.
type ScoredCandidate struct {
	Challenge Challenge
	Score     float64
}

// EnhancedChallenge is a selected challenge decorated with display metadata,
// a generated justification, and optional AI enrichment fields.
type EnhancedChallenge struct {
	Challenge

	LevelName             string    `json:"level_name"`
	LevelEmoji            string    `json:"level_emoji"`
	Difficulty            string    `json:"difficulty"`
	CategoryColor         string    `json:"category_color"`
	CategoryDescription   string    `json:"category_description"`
	AntiOptimizationScore float64   `json:"anti_optimization_score"`
	PersonalizationReason string    `json:"personalization_reason"`
	GeneratedAt           time.Time `json:"generated_at"`

	// Populated by the optional AI enricher; absent otherwise.
	Encouragement     string   `json:"encouragement,omitempty"`
	Tips              []string `json:"tips,omitempty"`
	ExpectedDiscovery string   `json:"expected_discovery,omitempty"`
	AIEnhanced        bool     `json:"ai_enhanced,omitempty"`
}

// GrowthTrend classifies how a user's category repertoire is developing.
type GrowthTrend string

const (
	TrendGrowing   GrowthTrend = "growing"
	TrendStable    GrowthTrend = "stable"
	TrendNarrowing GrowthTrend = "narrowing"
)

// Recommended feedback tags. The set is open ended: unknown tags are
// accepted with zero scoring weight, never rejected.
const (
	FeedbackCompleted     = "completed"
	FeedbackEnjoyed       = "enjoyed"
	FeedbackNotInterested = "not_interested"
	FeedbackTooDifficult  = "too_difficult"
	FeedbackTooEasy       = "too_easy"
)

// RecommendationRequest is the payload for POST /api/v1/recommendations.
type RecommendationRequest struct {
	Level       int                `json:"level"`
	Preferences UserPreferences    `json:"preferences"`
	Experiences []ExperienceRecord `json:"experiences"`
}

// FeedbackRequest is the payload for POST /api/v1/feedback.
type FeedbackRequest struct {
	ExperienceID string `json:"experience_id"`
	Feedback     string `json:"feedback"`
}

// FeedbackAck acknowledges a recorded feedback entry.
type FeedbackAck struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"recorded_at"`
}

// VisualizationRequest is the payload for POST /api/v1/visualization.
type VisualizationRequest struct {
	Experiences []ExperienceRecord `json:"experiences"`
}

// PreferencesUpdateRequest is the payload for POST /api/v1/preferences/update.
type PreferencesUpdateRequest struct {
	Experiences []ExperienceRecord `json:"experiences"`
}

// PreferencesUpdateResult carries the recomputed profile and growth trend.
type PreferencesUpdateResult struct {
	Profile UserProfile `json:"profile"`
	Trend   GrowthTrend `json:"growth_trend"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	ChallengeCount int    `json:"challenge_count"`
	Enricher       string `json:"enricher"`
}

// MarshalJSON ensures nil slices/maps in UserProfile marshal as [] / {}.
func (p UserProfile) MarshalJSON() ([]byte, error) {
	if p.FavoriteCategories == nil {
		p.FavoriteCategories = []string{}
	}
	if p.AvoidedCategories == nil {
		p.AvoidedCategories = []string{}
	}
	if p.RecentCategories == nil {
		p.RecentCategories = []string{}
	}
	if p.CategoryCounts == nil {
		p.CategoryCounts = map[string]int{}
	}
	type Alias UserProfile
	return json.Marshal(Alias(p))
}

// MarshalJSON ensures nil slices in UserPreferences marshal as [] not null.
func (u UserPreferences) MarshalJSON() ([]byte, error) {
	if u.Interests == nil {
		u.Interests = []string{}
	}
	if u.AvoidCategories == nil {
		u.AvoidCategories = []string{}
	}
	type Alias UserPreferences
	return json.Marshal(Alias(u))
}
