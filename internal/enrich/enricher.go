// Package enrich wraps the optional LLM collaborator that rewords a
// selected challenge and occasionally proposes a fully custom one. The
// recommendation pipeline must behave identically, minus cosmetic text,
// whether the enricher is healthy, failing, or absent.
package enrich

import (
	"context"

	"github.com/serenpaths/seren/internal/types"
)

// CustomChallenge is an AI-authored challenge plus its encouragement line,
// which has no home on the base Challenge record.
type CustomChallenge struct {
	types.Challenge
	Encouragement string
}

// Enricher defines the interface contract for LLM-backed challenge
// enrichment.
type Enricher interface {
	// EnhanceChallenge rewords the challenge for this user. On error the
	// caller keeps the original unchanged.
	EnhanceChallenge(ctx context.Context, ch types.EnhancedChallenge, profile types.UserProfile) (types.EnhancedChallenge, error)

	// SuggestChallenge generates a custom challenge for the level, or
	// (nil, nil) when the model declines.
	SuggestChallenge(ctx context.Context, prefs types.UserPreferences, experiences []types.ExperienceRecord, level int) (*CustomChallenge, error)

	Enabled() bool
	Name() string
}

// Compile-time interface check
var _ Enricher = (*Disabled)(nil)

// Disabled is the absent-collaborator variant: every call is a no-op.
type Disabled struct{}

// EnhanceChallenge returns the challenge unchanged.
func (Disabled) EnhanceChallenge(_ context.Context, ch types.EnhancedChallenge, _ types.UserProfile) (types.EnhancedChallenge, error) {
	return ch, nil
}

// SuggestChallenge never suggests anything.
func (Disabled) SuggestChallenge(context.Context, types.UserPreferences, []types.ExperienceRecord, int) (*CustomChallenge, error) {
	return nil, nil
}

// Enabled reports false; callers skip enrichment entirely.
func (Disabled) Enabled() bool { return false }

// Name identifies the variant in health output.
func (Disabled) Name() string { return "disabled" }
