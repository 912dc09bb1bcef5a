package engine

import (
	"sort"

	"github.com/serenpaths/seren/internal/types"
)

const (
	// favoriteCount is how many top categories count as "favorites".
	favoriteCount = 3

	// recentWindow is how many trailing history entries feed the
	// anti-repetition penalty.
	recentWindow = 5

	// unspecifiedCategory is the sentinel bucket for records without a
	// category. Missing fields never fail analysis.
	unspecifiedCategory = "unspecified"
)

// Analyze derives a UserProfile from an experience history. Pure function of
// its input and the static catalog category set; recomputed on every call.
//
// An empty history yields a zero profile with DiversityScore 0.0. The
// original service returned 0.5 there; 0.0 is the fixed contract here so
// diversity stays monotonic in the number of distinct categories.
func (e *Engine) Analyze(experiences []types.ExperienceRecord) types.UserProfile {
	profile := types.UserProfile{
		TotalExperiences:   len(experiences),
		FavoriteCategories: []string{},
		AvoidedCategories:  []string{},
		RecentCategories:   []string{},
		CategoryCounts:     map[string]int{},
	}
	if len(experiences) == 0 {
		return profile
	}

	// Count category occurrences, remembering first-seen order for
	// deterministic tie-breaks.
	firstSeen := make([]string, 0, len(experiences))
	for _, exp := range experiences {
		cat := categoryOf(exp)
		if _, seen := profile.CategoryCounts[cat]; !seen {
			firstSeen = append(firstSeen, cat)
		}
		profile.CategoryCounts[cat]++
	}

	profile.FavoriteCategories = topCategories(profile.CategoryCounts, firstSeen, favoriteCount)

	for _, cat := range e.catalog.Categories() {
		if _, seen := profile.CategoryCounts[cat]; !seen {
			profile.AvoidedCategories = append(profile.AvoidedCategories, cat)
		}
	}

	if total := e.catalog.CategoryCount(); total > 0 {
		diversity := float64(len(profile.CategoryCounts)) / float64(total)
		profile.DiversityScore = min(diversity, 1.0)
	}

	start := len(experiences) - recentWindow
	if start < 0 {
		start = 0
	}
	for _, exp := range experiences[start:] {
		profile.RecentCategories = append(profile.RecentCategories, categoryOf(exp))
	}

	return profile
}

func categoryOf(exp types.ExperienceRecord) string {
	if exp.Category == "" {
		return unspecifiedCategory
	}
	return exp.Category
}

// topCategories returns the n most frequent categories, ties broken by
// first-seen order in the history.
func topCategories(counts map[string]int, firstSeen []string, n int) []string {
	ranked := make([]string, len(firstSeen))
	copy(ranked, firstSeen)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
