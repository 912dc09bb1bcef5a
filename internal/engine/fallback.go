package engine

import (
	"fmt"

	"github.com/serenpaths/seren/internal/types"
)

// Fallback returns a hardcoded generic challenge for the level. Used when a
// level has no catalog entries or selection fails unexpectedly. It never
// errors and always produces a usable record; unknown levels pick up the
// catalog's generic level metadata.
func (e *Engine) Fallback(level int) types.Challenge {
	info := e.catalog.LevelInfo(level)

	return types.Challenge{
		Title:              fmt.Sprintf("Today's special discovery (%s)", info.Name),
		Category:           "Lifestyle",
		Type:               "general",
		Icon:               "Sparkles",
		Description:        "Find one small adventure that makes today a little different",
		EstimatedTime:      info.TimeRange,
		SerendipityScore:   0.8,
		DiscoveryPotential: "An unplanned discovery",
		Level:              level,
		Fallback:           true,
	}
}
