package engine

import (
	"fmt"

	"github.com/serenpaths/seren/internal/types"
)

// Enhance decorates a selected challenge with level and category metadata,
// a display score, and a generated justification. Pure transformation
// apart from the timestamp; unknown levels and categories fall back to the
// catalog defaults.
func (e *Engine) Enhance(ch types.Challenge, profile types.UserProfile) types.EnhancedChallenge {
	levelInfo := e.catalog.LevelInfo(ch.Level)
	categoryInfo := e.catalog.CategoryInfo(ch.Category)

	return types.EnhancedChallenge{
		Challenge: ch,

		LevelName:           levelInfo.Name,
		LevelEmoji:          levelInfo.Emoji,
		Difficulty:          levelInfo.Difficulty,
		CategoryColor:       categoryInfo.Color,
		CategoryDescription: categoryInfo.Description,

		// Display value only; selection already happened. Scored against
		// empty preferences so declared avoidance never skews the shown
		// number.
		AntiOptimizationScore: Score(ch, profile, types.UserPreferences{}),
		PersonalizationReason: personalizationReason(ch, profile),
		GeneratedAt:           e.now().UTC(),
	}
}

// personalizationReason picks exactly one justification, first match wins.
func personalizationReason(ch types.Challenge, profile types.UserProfile) string {
	switch {
	case containsCategory(profile.AvoidedCategories, ch.Category):
		return fmt.Sprintf("A first step into %s, a field you have not explored yet", ch.Category)
	case profile.TotalExperiences < 3:
		return "A gentle start while you are finding your footing"
	case profile.DiversityScore < 0.5:
		return "A push to widen the range of your experience"
	default:
		return "A special pick to stir your sense of adventure"
	}
}
