package catalog

import (
	"testing"

	"github.com/serenpaths/seren/internal/types"
)

func TestLoad_ParsesEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := c.Size(); got != 12 {
		t.Errorf("Size() = %d, want 12", got)
	}
	if got := c.CategoryCount(); got != 7 {
		t.Errorf("CategoryCount() = %d, want 7", got)
	}
	if got := c.Levels(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Levels() = %v, want [1 2 3]", got)
	}
}

func TestLoad_AssignsLevelToEveryChallenge(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, level := range c.Levels() {
		for _, ch := range c.ChallengesForLevel(level) {
			if ch.Level != level {
				t.Errorf("challenge %q has level %d, want %d", ch.Title, ch.Level, level)
			}
			if ch.Title == "" || ch.Category == "" {
				t.Errorf("challenge at level %d missing title or category: %+v", level, ch)
			}
			if ch.SerendipityScore < 0 || ch.SerendipityScore > 1 {
				t.Errorf("challenge %q serendipity score %f out of [0,1]", ch.Title, ch.SerendipityScore)
			}
		}
	}
}

func TestChallengesForLevel_ReturnsCopy(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	first := c.ChallengesForLevel(1)
	first[0].Title = "mutated"

	second := c.ChallengesForLevel(1)
	if second[0].Title == "mutated" {
		t.Error("ChallengesForLevel returned shared backing array; catalog must stay immutable")
	}
}

func TestChallengesForLevel_UnknownLevelIsEmpty(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := c.ChallengesForLevel(99); len(got) != 0 {
		t.Errorf("ChallengesForLevel(99) = %v, want empty", got)
	}
}

func TestCategoryInfo_KnownAndDefault(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	known := c.CategoryInfo("Lifestyle")
	if known.Color != "#10B981" {
		t.Errorf("Lifestyle color = %q, want #10B981", known.Color)
	}

	unknown := c.CategoryInfo("Skydiving")
	if unknown.Color != "#6B7280" {
		t.Errorf("unknown category color = %q, want neutral gray #6B7280", unknown.Color)
	}
	if unknown.Description == "" {
		t.Error("unknown category description must not be empty")
	}
}

func TestLevelInfo_KnownAndDefault(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	known := c.LevelInfo(2)
	if known.Name != "Challenge Explorer" || known.Difficulty != "medium" {
		t.Errorf("LevelInfo(2) = %+v, want Challenge Explorer/medium", known)
	}

	unknown := c.LevelInfo(7)
	if unknown.Name != "Level 7" {
		t.Errorf("LevelInfo(7).Name = %q, want \"Level 7\"", unknown.Name)
	}
	if unknown.Difficulty != "unknown" {
		t.Errorf("LevelInfo(7).Difficulty = %q, want \"unknown\"", unknown.Difficulty)
	}
}

func TestNew_CopiesInputBuckets(t *testing.T) {
	in := map[int][]types.Challenge{
		1: {{Title: "a", Category: "X"}},
	}
	c := New(in, nil, nil)

	in[1][0].Title = "changed"
	if got := c.ChallengesForLevel(1)[0].Title; got != "a" {
		t.Errorf("catalog challenge title = %q, want %q (input mutation leaked)", got, "a")
	}
}
