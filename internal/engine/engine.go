// Package engine implements the anti-optimization recommendation pipeline:
// analyze the caller-supplied experience history, score every catalog
// challenge at the requested level, draw one by weighted random selection,
// and decorate it for display. All state lives in the inputs; the engine
// itself holds only the read-only catalog and the random source.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/serenpaths/seren/internal/catalog"
	"github.com/serenpaths/seren/internal/types"
)

// Supported difficulty levels form a closed set.
const (
	MinLevel = 1
	MaxLevel = 3
)

// ErrInvalidLevel indicates a requested level outside {1,2,3}. This is the
// only error the engine surfaces to callers; everything else degrades to
// the fallback challenge.
var ErrInvalidLevel = errors.New("invalid challenge level")

// Engine produces challenge recommendations. Safe for concurrent use: the
// catalog is read-only and the sampler serializes access to its random
// source.
type Engine struct {
	catalog *catalog.Catalog
	sampler *Sampler
	now     func() time.Time
}

// New creates an engine over the given catalog. A nil source seeds the
// sampler from the wall clock; tests inject a fixed source for
// reproducible draws.
func New(cat *catalog.Catalog, src rand.Source) *Engine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Engine{
		catalog: cat,
		sampler: NewSampler(src),
		now:     time.Now,
	}
}

// Catalog exposes the engine's catalog for metadata lookups.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Chance draws true with probability p from the engine's random source.
func (e *Engine) Chance(p float64) bool {
	return e.sampler.Chance(p)
}

// Recommend runs the full pipeline for one request. It fails only on an
// out-of-range level; an empty catalog bucket yields the fallback
// challenge, never an error.
func (e *Engine) Recommend(level int, prefs types.UserPreferences, experiences []types.ExperienceRecord) (types.EnhancedChallenge, error) {
	if level < MinLevel || level > MaxLevel {
		return types.EnhancedChallenge{}, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	profile := e.Analyze(experiences)

	candidates := e.catalog.ChallengesForLevel(level)
	if len(candidates) == 0 {
		return e.Enhance(e.Fallback(level), profile), nil
	}

	// Hard avoidance filter, applied before scoring. If it would remove
	// every candidate the filter is bypassed rather than returning the
	// fallback: the user still gets a real challenge from this level.
	filtered := filterAvoided(candidates, prefs.AvoidCategories)
	if len(filtered) == 0 {
		filtered = candidates
	}

	scored := make([]types.ScoredCandidate, 0, len(filtered))
	for _, ch := range filtered {
		scored = append(scored, types.ScoredCandidate{
			Challenge: ch,
			Score:     Score(ch, profile, prefs),
		})
	}

	selected, ok := e.sampler.Select(scored)
	if !ok {
		selected = e.Fallback(level)
	}

	return e.Enhance(selected, profile), nil
}

// filterAvoided removes challenges whose category or type matches an
// avoid token. Matching is case-insensitive exact comparison.
func filterAvoided(candidates []types.Challenge, avoid []string) []types.Challenge {
	if len(avoid) == 0 {
		return candidates
	}
	out := make([]types.Challenge, 0, len(candidates))
	for _, ch := range candidates {
		if matchesAnyToken(avoid, ch.Category) || matchesAnyToken(avoid, ch.Type) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

func matchesAnyToken(tokens []string, value string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, value) {
			return true
		}
	}
	return false
}

func containsCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
