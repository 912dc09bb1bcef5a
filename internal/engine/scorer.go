package engine

import "github.com/serenpaths/seren/internal/types"

// Scoring adjustments. The whole point of the engine is that these push
// selection away from what the user already knows, not toward it.
const (
	defaultSerendipity = 0.5

	neverTriedBonus  = 0.3 // category absent from the user's entire history
	nonFavoriteBonus = 0.1 // tried, but under-represented
	lowDiversityBump = 0.2 // repertoire still narrow, push outward
	recentPenalty    = 0.2 // category seen in the last few experiences
	avoidPenalty     = 0.4 // user explicitly declared avoidance
)

// Score computes the anti-optimization score for one challenge, in [0,1].
// Deterministic in its three inputs; all randomness lives in the Sampler.
func Score(ch types.Challenge, profile types.UserProfile, prefs types.UserPreferences) float64 {
	score := ch.SerendipityScore
	if score == 0 {
		// Catalog entries always carry a positive prior; zero means the
		// field was absent.
		score = defaultSerendipity
	}

	if containsCategory(profile.AvoidedCategories, ch.Category) {
		score += neverTriedBonus
	} else if ch.Category != "" && !containsCategory(profile.FavoriteCategories, ch.Category) {
		score += nonFavoriteBonus
	}

	if profile.DiversityScore < 0.7 {
		score += lowDiversityBump
	}

	if containsCategory(profile.RecentCategories, ch.Category) {
		score -= recentPenalty
	}

	// Soft penalty layered under the hard filter in Recommend. It matters
	// when the safety net re-admits avoided candidates.
	if matchesAnyToken(prefs.AvoidCategories, ch.Category) {
		score -= avoidPenalty
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
