// Package catalog holds the static challenge catalog: per-level challenge
// lists plus category and level display metadata. The catalog is parsed once
// from an embedded YAML document and is read-only afterwards, so it is safe
// for concurrent use without locking.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/serenpaths/seren/internal/types"
)

//go:embed catalog.yaml
var rawCatalog []byte

// CategoryInfo is display metadata for a challenge category.
type CategoryInfo struct {
	Color       string `yaml:"color" json:"color"`
	Description string `yaml:"description" json:"description"`
}

// LevelInfo is display metadata for a difficulty level.
type LevelInfo struct {
	Name        string `yaml:"name" json:"name"`
	Emoji       string `yaml:"emoji" json:"emoji"`
	Description string `yaml:"description" json:"description"`
	TimeRange   string `yaml:"time_range" json:"time_range"`
	Difficulty  string `yaml:"difficulty" json:"difficulty"`
}

// Catalog is the loaded challenge database. Every challenge belongs to
// exactly one level bucket, fixed at load time.
type Catalog struct {
	levels     map[int][]types.Challenge
	categories map[string]CategoryInfo
	levelInfo  map[int]LevelInfo
}

type catalogDoc struct {
	Levels     map[int][]types.Challenge `yaml:"levels"`
	Categories map[string]CategoryInfo   `yaml:"categories"`
	LevelInfo  map[int]LevelInfo         `yaml:"level_info"`
}

// Load parses the embedded catalog document.
func Load() (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(rawCatalog, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(doc.Levels, doc.Categories, doc.LevelInfo), nil
}

// New builds a catalog from explicit data. Used by Load and by tests that
// need a custom (for example empty) catalog shape.
func New(levels map[int][]types.Challenge, categories map[string]CategoryInfo, levelInfo map[int]LevelInfo) *Catalog {
	c := &Catalog{
		levels:     make(map[int][]types.Challenge, len(levels)),
		categories: categories,
		levelInfo:  levelInfo,
	}
	if c.categories == nil {
		c.categories = map[string]CategoryInfo{}
	}
	if c.levelInfo == nil {
		c.levelInfo = map[int]LevelInfo{}
	}
	for level, challenges := range levels {
		bucket := make([]types.Challenge, len(challenges))
		copy(bucket, challenges)
		for i := range bucket {
			bucket[i].Level = level
		}
		c.levels[level] = bucket
	}
	return c
}

// ChallengesForLevel returns the challenge bucket for a level. The returned
// slice is a copy; callers may reorder or filter it freely.
func (c *Catalog) ChallengesForLevel(level int) []types.Challenge {
	bucket := c.levels[level]
	out := make([]types.Challenge, len(bucket))
	copy(out, bucket)
	return out
}

// CategoryInfo returns display metadata for a category, with a neutral
// default for unknown categories.
func (c *Catalog) CategoryInfo(category string) CategoryInfo {
	if info, ok := c.categories[category]; ok {
		return info
	}
	return CategoryInfo{
		Color:       "#6B7280",
		Description: "A new kind of experience",
	}
}

// LevelInfo returns display metadata for a level, with a generic default
// for unknown levels.
func (c *Catalog) LevelInfo(level int) LevelInfo {
	if info, ok := c.levelInfo[level]; ok {
		return info
	}
	return LevelInfo{
		Name:        fmt.Sprintf("Level %d", level),
		Emoji:       "⚡",
		Description: "A new challenge",
		TimeRange:   "time unknown",
		Difficulty:  "unknown",
	}
}

// Categories returns all known category names in sorted order.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories))
	for name := range c.categories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CategoryCount returns the number of known categories. The diversity score
// denominator.
func (c *Catalog) CategoryCount() int {
	return len(c.categories)
}

// Levels returns all level numbers in ascending order.
func (c *Catalog) Levels() []int {
	out := make([]int, 0, len(c.levels))
	for level := range c.levels {
		out = append(out, level)
	}
	sort.Ints(out)
	return out
}

// Size returns the total number of challenges across all levels.
func (c *Catalog) Size() int {
	n := 0
	for _, bucket := range c.levels {
		n += len(bucket)
	}
	return n
}
