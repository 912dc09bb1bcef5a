package engine

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/serenpaths/seren/internal/catalog"
	"github.com/serenpaths/seren/internal/types"
)

// newTestEngine builds an engine over the real embedded catalog with a
// deterministic random source.
func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	return New(cat, rand.NewSource(seed))
}

func experiencesOf(categories ...string) []types.ExperienceRecord {
	out := make([]types.ExperienceRecord, len(categories))
	for i, cat := range categories {
		out[i] = types.ExperienceRecord{
			ID:       fmt.Sprintf("exp-%d", i),
			Category: cat,
			Level:    1,
		}
	}
	return out
}

func TestAnalyze_EmptyHistoryDefaults(t *testing.T) {
	e := newTestEngine(t, 1)

	profile := e.Analyze(nil)

	if profile.TotalExperiences != 0 {
		t.Errorf("TotalExperiences = %d, want 0", profile.TotalExperiences)
	}
	if len(profile.FavoriteCategories) != 0 {
		t.Errorf("FavoriteCategories = %v, want empty", profile.FavoriteCategories)
	}
	if len(profile.AvoidedCategories) != 0 {
		t.Errorf("AvoidedCategories = %v, want empty", profile.AvoidedCategories)
	}
	if profile.DiversityScore != 0.0 {
		t.Errorf("DiversityScore = %f, want 0.0 (fixed empty-history default)", profile.DiversityScore)
	}
}

func TestAnalyze_FavoritesTopThreeWithFirstSeenTieBreak(t *testing.T) {
	e := newTestEngine(t, 1)

	// Social x3, Lifestyle x2, then Entertainment and Food & Drink tied
	// at 1 with Entertainment seen first.
	history := experiencesOf(
		"Social", "Lifestyle", "Social", "Entertainment",
		"Food & Drink", "Social", "Lifestyle",
	)

	profile := e.Analyze(history)

	want := []string{"Social", "Lifestyle", "Entertainment"}
	if !reflect.DeepEqual(profile.FavoriteCategories, want) {
		t.Errorf("FavoriteCategories = %v, want %v", profile.FavoriteCategories, want)
	}
}

func TestAnalyze_AvoidedIsCatalogMinusSeen(t *testing.T) {
	e := newTestEngine(t, 1)

	profile := e.Analyze(experiencesOf("Social", "Lifestyle"))

	for _, avoided := range profile.AvoidedCategories {
		if avoided == "Social" || avoided == "Lifestyle" {
			t.Errorf("experienced category %q listed as avoided", avoided)
		}
	}
	// 7 catalog categories, 2 seen.
	if len(profile.AvoidedCategories) != 5 {
		t.Errorf("len(AvoidedCategories) = %d, want 5", len(profile.AvoidedCategories))
	}
}

func TestAnalyze_DiversityScore(t *testing.T) {
	e := newTestEngine(t, 1)

	tests := []struct {
		name       string
		categories []string
		want       float64
	}{
		{"single category", []string{"Social", "Social", "Social"}, 1.0 / 7.0},
		{"two categories", []string{"Social", "Lifestyle"}, 2.0 / 7.0},
		{"all seven", []string{
			"Social", "Lifestyle", "Entertainment", "Food & Drink",
			"Learning & Reading", "Nature & Outdoors", "Arts & Creativity",
		}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Analyze(experiencesOf(tt.categories...)).DiversityScore
			if got != tt.want {
				t.Errorf("DiversityScore = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAnalyze_DiversityCappedWithUnknownCategories(t *testing.T) {
	e := newTestEngine(t, 1)

	// 8 distinct categories against 7 known ones: ratio would exceed 1.
	profile := e.Analyze(experiencesOf(
		"Social", "Lifestyle", "Entertainment", "Food & Drink",
		"Learning & Reading", "Nature & Outdoors", "Arts & Creativity",
		"Skydiving",
	))

	if profile.DiversityScore != 1.0 {
		t.Errorf("DiversityScore = %f, want capped 1.0", profile.DiversityScore)
	}
}

func TestAnalyze_DiversityMonotonic(t *testing.T) {
	e := newTestEngine(t, 1)

	categories := []string{
		"Social", "Lifestyle", "Entertainment", "Food & Drink",
		"Learning & Reading", "Nature & Outdoors", "Arts & Creativity",
	}

	prev := -1.0
	for i := 1; i <= len(categories); i++ {
		score := e.Analyze(experiencesOf(categories[:i]...)).DiversityScore
		if score < prev {
			t.Fatalf("diversity decreased from %f to %f at %d distinct categories", prev, score, i)
		}
		prev = score
	}
}

func TestAnalyze_RecentWindowPreservesOrder(t *testing.T) {
	e := newTestEngine(t, 1)

	history := experiencesOf(
		"Lifestyle", "Lifestyle", "Social", "Entertainment",
		"Food & Drink", "Social", "Arts & Creativity",
	)

	profile := e.Analyze(history)

	want := []string{"Social", "Entertainment", "Food & Drink", "Social", "Arts & Creativity"}
	if !reflect.DeepEqual(profile.RecentCategories, want) {
		t.Errorf("RecentCategories = %v, want %v", profile.RecentCategories, want)
	}
}

func TestAnalyze_ShortHistoryRecentWindow(t *testing.T) {
	e := newTestEngine(t, 1)

	profile := e.Analyze(experiencesOf("Social", "Lifestyle"))

	want := []string{"Social", "Lifestyle"}
	if !reflect.DeepEqual(profile.RecentCategories, want) {
		t.Errorf("RecentCategories = %v, want %v", profile.RecentCategories, want)
	}
}

func TestAnalyze_MissingCategoryGoesToUnspecifiedBucket(t *testing.T) {
	e := newTestEngine(t, 1)

	history := []types.ExperienceRecord{
		{ID: "a"},
		{ID: "b", Category: "Social"},
		{ID: "c"},
	}

	profile := e.Analyze(history)

	if got := profile.CategoryCounts[unspecifiedCategory]; got != 2 {
		t.Errorf("CategoryCounts[%q] = %d, want 2", unspecifiedCategory, got)
	}
	if got := profile.RecentCategories[0]; got != unspecifiedCategory {
		t.Errorf("RecentCategories[0] = %q, want %q", got, unspecifiedCategory)
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t, 1)

	history := experiencesOf("Social", "Lifestyle")
	snapshot := make([]types.ExperienceRecord, len(history))
	copy(snapshot, history)

	e.Analyze(history)

	if !reflect.DeepEqual(history, snapshot) {
		t.Error("Analyze mutated its input history")
	}
}
