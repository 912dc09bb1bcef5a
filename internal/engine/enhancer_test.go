package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/serenpaths/seren/internal/types"
)

func TestEnhance_AttachesMetadata(t *testing.T) {
	e := newTestEngine(t, 1)
	e.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	ch := e.catalog.ChallengesForLevel(2)[0]
	enhanced := e.Enhance(ch, types.UserProfile{})

	if enhanced.LevelName != "Challenge Explorer" {
		t.Errorf("LevelName = %q, want Challenge Explorer", enhanced.LevelName)
	}
	if enhanced.LevelEmoji == "" || enhanced.Difficulty != "medium" {
		t.Errorf("level metadata incomplete: emoji=%q difficulty=%q", enhanced.LevelEmoji, enhanced.Difficulty)
	}
	if enhanced.CategoryColor == "" || enhanced.CategoryDescription == "" {
		t.Errorf("category metadata incomplete: color=%q description=%q", enhanced.CategoryColor, enhanced.CategoryDescription)
	}
	if !enhanced.GeneratedAt.Equal(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("GeneratedAt = %v, want injected clock value", enhanced.GeneratedAt)
	}
}

func TestEnhance_UnknownLevelAndCategoryDefaults(t *testing.T) {
	e := newTestEngine(t, 1)

	ch := types.Challenge{Title: "mystery", Category: "Skydiving", Level: 9, SerendipityScore: 0.5}
	enhanced := e.Enhance(ch, types.UserProfile{})

	if enhanced.LevelName != "Level 9" {
		t.Errorf("LevelName = %q, want generic Level 9", enhanced.LevelName)
	}
	if enhanced.Difficulty != "unknown" {
		t.Errorf("Difficulty = %q, want unknown", enhanced.Difficulty)
	}
	if enhanced.CategoryColor != "#6B7280" {
		t.Errorf("CategoryColor = %q, want neutral gray", enhanced.CategoryColor)
	}
}

func TestEnhance_ScoreWithinBounds(t *testing.T) {
	e := newTestEngine(t, 1)

	profiles := []types.UserProfile{
		{},
		{AvoidedCategories: []string{"Social"}, DiversityScore: 0.1},
		{RecentCategories: []string{"Social"}, DiversityScore: 0.9, TotalExperiences: 20},
	}

	for _, level := range e.catalog.Levels() {
		for _, ch := range e.catalog.ChallengesForLevel(level) {
			for _, profile := range profiles {
				got := e.Enhance(ch, profile).AntiOptimizationScore
				if got < 0 || got > 1 {
					t.Errorf("AntiOptimizationScore for %q = %f, out of [0,1]", ch.Title, got)
				}
			}
		}
	}
}

func TestPersonalizationReason_PriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		ch      types.Challenge
		profile types.UserProfile
		wantSub string
	}{
		{
			name:    "never tried wins over newcomer",
			ch:      types.Challenge{Category: "Social"},
			profile: types.UserProfile{TotalExperiences: 1, AvoidedCategories: []string{"Social"}},
			wantSub: "first step into Social",
		},
		{
			name:    "newcomer",
			ch:      types.Challenge{Category: "Social"},
			profile: types.UserProfile{TotalExperiences: 2, DiversityScore: 0.2},
			wantSub: "gentle start",
		},
		{
			name:    "narrow diversity",
			ch:      types.Challenge{Category: "Social"},
			profile: types.UserProfile{TotalExperiences: 8, DiversityScore: 0.3},
			wantSub: "widen the range",
		},
		{
			name:    "generic adventurous pick",
			ch:      types.Challenge{Category: "Social"},
			profile: types.UserProfile{TotalExperiences: 8, DiversityScore: 0.8},
			wantSub: "sense of adventure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := personalizationReason(tt.ch, tt.profile)
			if !strings.Contains(got, tt.wantSub) {
				t.Errorf("reason = %q, want substring %q", got, tt.wantSub)
			}
		})
	}
}

func TestFallback_AlwaysUsable(t *testing.T) {
	e := newTestEngine(t, 1)

	for _, level := range []int{1, 2, 3, 0, 42} {
		ch := e.Fallback(level)
		if !ch.Fallback {
			t.Errorf("Fallback(%d) missing fallback marker", level)
		}
		if ch.Level != level {
			t.Errorf("Fallback(%d).Level = %d", level, ch.Level)
		}
		if ch.Title == "" || ch.Category == "" || ch.EstimatedTime == "" {
			t.Errorf("Fallback(%d) incomplete: %+v", level, ch)
		}
		if ch.SerendipityScore != 0.8 {
			t.Errorf("Fallback(%d).SerendipityScore = %f, want 0.8", level, ch.SerendipityScore)
		}
	}
}
