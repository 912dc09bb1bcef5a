package engine

import (
	"math/rand"
	"testing"

	"github.com/serenpaths/seren/internal/types"
)

func scoredList(scores ...float64) []types.ScoredCandidate {
	out := make([]types.ScoredCandidate, len(scores))
	for i, s := range scores {
		out[i] = types.ScoredCandidate{
			Challenge: types.Challenge{Title: string(rune('a' + i))},
			Score:     s,
		}
	}
	return out
}

func TestSelect_EmptyInput(t *testing.T) {
	s := NewSampler(rand.NewSource(1))

	_, ok := s.Select(nil)
	if ok {
		t.Error("Select(nil) ok = true, want false")
	}
}

func TestSelect_Reproducible(t *testing.T) {
	scored := scoredList(0.2, 0.5, 0.9, 0.1)

	first := make([]string, 20)
	s1 := NewSampler(rand.NewSource(42))
	for i := range first {
		ch, ok := s1.Select(scored)
		if !ok {
			t.Fatal("Select returned ok=false for non-empty input")
		}
		first[i] = ch.Title
	}

	s2 := NewSampler(rand.NewSource(42))
	for i := range first {
		ch, _ := s2.Select(scored)
		if ch.Title != first[i] {
			t.Fatalf("draw %d: got %q, want %q (same seed must replay the same sequence)", i, ch.Title, first[i])
		}
	}
}

func TestSelect_ZeroTotalWeightFallsBackToUniform(t *testing.T) {
	scored := scoredList(0, 0, 0)

	s := NewSampler(rand.NewSource(7))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		ch, ok := s.Select(scored)
		if !ok {
			t.Fatal("Select returned ok=false for non-empty input")
		}
		seen[ch.Title] = true
	}

	if len(seen) != 3 {
		t.Errorf("uniform fallback reached %d of 3 candidates over 200 draws", len(seen))
	}
}

func TestSelect_SingleCandidateAlwaysWins(t *testing.T) {
	scored := scoredList(0.01)

	s := NewSampler(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		ch, _ := s.Select(scored)
		if ch.Title != "a" {
			t.Fatalf("single candidate draw returned %q", ch.Title)
		}
	}
}

func TestSelect_WeightsBiasSelection(t *testing.T) {
	// One heavy candidate among near-zero ones should dominate.
	scored := scoredList(0.001, 0.001, 0.9, 0.001)

	s := NewSampler(rand.NewSource(11))
	heavy := 0
	const draws = 1000
	for i := 0; i < draws; i++ {
		ch, _ := s.Select(scored)
		if ch.Title == "c" {
			heavy++
		}
	}

	if heavy < draws*8/10 {
		t.Errorf("heavy candidate won %d/%d draws, want the large majority", heavy, draws)
	}
}

func TestSelect_TrailingZeroWeightsUnreachable(t *testing.T) {
	// r is drawn from [0, 0.5), so the first candidate's cumulative sum
	// always covers it and the zero-weight tail can never win.
	scored := scoredList(0.5, 0, 0)

	s := NewSampler(rand.NewSource(5))
	for i := 0; i < 500; i++ {
		ch, _ := s.Select(scored)
		if ch.Title != "a" {
			t.Fatalf("selected zero-weight candidate %q", ch.Title)
		}
	}
}

func TestChance_Deterministic(t *testing.T) {
	s1 := NewSampler(rand.NewSource(99))
	s2 := NewSampler(rand.NewSource(99))

	for i := 0; i < 100; i++ {
		if s1.Chance(0.3) != s2.Chance(0.3) {
			t.Fatalf("Chance diverged at draw %d with equal seeds", i)
		}
	}
}
