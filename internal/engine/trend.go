package engine

import "github.com/serenpaths/seren/internal/types"

// trendWindow is the number of entries compared at each end of the history.
const trendWindow = 5

// AnalyzeTrend classifies repertoire development by comparing the number of
// distinct categories in the earliest and most recent windows of the
// history. Windows are trendWindow entries each, or half the history when
// fewer than twice that many entries exist.
func AnalyzeTrend(experiences []types.ExperienceRecord) types.GrowthTrend {
	w := trendWindow
	if len(experiences) < 2*trendWindow {
		w = len(experiences) / 2
	}
	if w == 0 {
		return types.TrendStable
	}

	early := distinctCategories(experiences[:w])
	recent := distinctCategories(experiences[len(experiences)-w:])

	switch {
	case recent > early:
		return types.TrendGrowing
	case recent < early:
		return types.TrendNarrowing
	default:
		return types.TrendStable
	}
}

func distinctCategories(experiences []types.ExperienceRecord) int {
	seen := make(map[string]struct{}, len(experiences))
	for _, exp := range experiences {
		seen[categoryOf(exp)] = struct{}{}
	}
	return len(seen)
}

// UpdatePreferences recomputes the profile and growth trend for a supplied
// history. Stateless: nothing is retained between calls.
func (e *Engine) UpdatePreferences(experiences []types.ExperienceRecord) types.PreferencesUpdateResult {
	return types.PreferencesUpdateResult{
		Profile: e.Analyze(experiences),
		Trend:   AnalyzeTrend(experiences),
	}
}
