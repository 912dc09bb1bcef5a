// Package viz derives 3D display coordinates from an experience history for
// the front-end "experience strings" scene. Entirely cosmetic: nothing here
// feeds back into recommendation logic. All jitter is seeded from record
// IDs, so output is a pure function of the input list.
package viz

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/serenpaths/seren/internal/types"
)

// Scene layout constants for the completed-experience spiral and the
// in-progress floating ring.
const (
	spiralTurns = 2
	depthRange  = 6.0
	baseRadius  = 2.0
	floatRadius = 4.0
)

// categoryColors overrides the hashed color for known categories.
var categoryColors = map[string]string{
	"Lifestyle":          "#6EE7B7",
	"Arts & Creativity":  "#C4B5FD",
	"Food & Drink":       "#FDE68A",
	"Social":             "#F9A8D4",
	"Learning & Reading": "#93C5FD",
	"Nature & Outdoors":  "#86EFAC",
	"Sports & Fitness":   "#FCA5A5",
	"Entertainment":      "#FDBA74",
}

// Vec3 is a 3D scene position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SpiralPosition places one completed experience on the spiral.
type SpiralPosition struct {
	ExperienceID string  `json:"experience_id"`
	Position     Vec3    `json:"position"`
	Scale        float64 `json:"scale"`
	Color        string  `json:"color"`
	SpiralIndex  int     `json:"spiral_index"`
	Depth        float64 `json:"depth"`
}

// FloatingPosition places one in-progress experience on the outer ring.
type FloatingPosition struct {
	ExperienceID string `json:"experience_id"`
	Position     Vec3   `json:"position"`
	Color        string `json:"color"`
	Index        int    `json:"index"`
}

// ConnectionCurve is a quadratic curve linking two adjacent spiral spheres.
type ConnectionCurve struct {
	StartID    string  `json:"start_id"`
	EndID      string  `json:"end_id"`
	Points     []Vec3  `json:"points"`
	StartColor string  `json:"start_color"`
	EndColor   string  `json:"end_color"`
	Distance   float64 `json:"distance"`
}

// Stats summarizes the visualized history.
type Stats struct {
	TotalExperiences int            `json:"total_experiences"`
	CompletedCount   int            `json:"completed_count"`
	IncompleteCount  int            `json:"incomplete_count"`
	Categories       map[string]int `json:"categories"`
}

// Data is the complete scene description returned to the front end.
type Data struct {
	SpiralPositions   []SpiralPosition   `json:"spiral_positions"`
	FloatingPositions []FloatingPosition `json:"floating_positions"`
	ConnectionCurves  []ConnectionCurve  `json:"connection_curves"`
	Stats             Stats              `json:"stats"`
	GeneratedAt       time.Time          `json:"generated_at"`
}

// Generate builds the full scene for an experience list.
func Generate(experiences []types.ExperienceRecord) Data {
	spiral := SpiralPositions(experiences)
	floating := FloatingPositions(experiences)

	categories := map[string]int{}
	completed := 0
	for _, exp := range experiences {
		cat := exp.Category
		if cat == "" {
			cat = "other"
		}
		categories[cat]++
		if exp.Completed {
			completed++
		}
	}

	return Data{
		SpiralPositions:   spiral,
		FloatingPositions: floating,
		ConnectionCurves:  ConnectionCurves(spiral),
		Stats: Stats{
			TotalExperiences: len(experiences),
			CompletedCount:   completed,
			IncompleteCount:  len(experiences) - completed,
			Categories:       categories,
		},
		GeneratedAt: time.Now().UTC(),
	}
}

// SpiralPositions lays completed experiences along a front-opening spiral.
func SpiralPositions(experiences []types.ExperienceRecord) []SpiralPosition {
	var completed []types.ExperienceRecord
	for _, exp := range experiences {
		if exp.Completed {
			completed = append(completed, exp)
		}
	}

	positions := make([]SpiralPosition, 0, len(completed))
	denom := float64(len(completed) - 1)
	if denom < 1 {
		denom = 1
	}

	for i, exp := range completed {
		t := float64(i) / denom
		angle := t * spiralTurns * 2 * math.Pi
		depth := -depthRange/2 + t*depthRange
		radius := baseRadius + t*0.8

		seed := idSeed(exp.ID, i)
		angle += (seededRandom(seed*1.234) - 0.5) * math.Pi / 3

		x := math.Cos(angle) * radius
		y := math.Sin(angle) * radius

		distance := 0.8 + seededRandom(seed*2.345)*0.4
		x *= distance
		y *= distance
		y += (seededRandom(seed*3.456) - 0.5) * 1.5

		level := exp.Level
		if level < 1 {
			level = 1
		}

		positions = append(positions, SpiralPosition{
			ExperienceID: exp.ID,
			Position:     Vec3{X: x, Y: y, Z: depth},
			Scale:        0.8 + float64(level)*0.2,
			Color:        ThemeColor(exp.ID, exp.Category),
			SpiralIndex:  i,
			Depth:        depth,
		})
	}
	return positions
}

// FloatingPositions rings in-progress experiences around the spiral.
func FloatingPositions(experiences []types.ExperienceRecord) []FloatingPosition {
	var incomplete []types.ExperienceRecord
	for _, exp := range experiences {
		if !exp.Completed {
			incomplete = append(incomplete, exp)
		}
	}

	positions := make([]FloatingPosition, 0, len(incomplete))
	denom := float64(len(incomplete))
	if denom < 1 {
		denom = 1
	}

	for i, exp := range incomplete {
		angle := float64(i) / denom * 2 * math.Pi
		seed := idSeed(exp.ID, i)

		height := seededRandom(seed*3.456)*2 - 1
		radius := floatRadius + seededRandom(seed*4.567)*0.5

		positions = append(positions, FloatingPosition{
			ExperienceID: exp.ID,
			Position: Vec3{
				X: math.Cos(angle) * radius,
				Y: math.Sin(angle) * radius,
				Z: math.Sin(angle*2)*1.5 + height,
			},
			Color: ThemeColor(exp.ID, exp.Category),
			Index: i,
		})
	}
	return positions
}

// ConnectionCurves links adjacent spiral positions with bulged midpoints.
func ConnectionCurves(spiral []SpiralPosition) []ConnectionCurve {
	if len(spiral) < 2 {
		return nil
	}

	curves := make([]ConnectionCurve, 0, len(spiral)-1)
	for i := 0; i < len(spiral)-1; i++ {
		start := spiral[i]
		end := spiral[i+1]

		dx := end.Position.X - start.Position.X
		dy := end.Position.Y - start.Position.Y
		dz := end.Position.Z - start.Position.Z
		distance := math.Sqrt(dx*dx + dy*dy + dz*dz)

		mid := Vec3{
			X: (start.Position.X + end.Position.X) / 2,
			Y: (start.Position.Y + end.Position.Y) / 2,
			Z: (start.Position.Z + end.Position.Z) / 2,
		}

		jitter := float64(hashID(start.ExperienceID)+hashID(end.ExperienceID)) / 1000
		jitter = jitter - math.Floor(jitter)
		bulge := distance * 0.3
		mid.X += (jitter - 0.5) * bulge
		mid.Y += (jitter*0.7 - 0.35) * bulge
		mid.Z += (jitter*0.3 - 0.15) * bulge

		curves = append(curves, ConnectionCurve{
			StartID:    start.ExperienceID,
			EndID:      end.ExperienceID,
			Points:     []Vec3{start.Position, mid, end.Position},
			StartColor: start.Color,
			EndColor:   end.Color,
			Distance:   distance,
		})
	}
	return curves
}

// ThemeColor picks the category's palette color when known, otherwise a
// soft HSL color derived from the record ID.
func ThemeColor(id, category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return idToColor(id)
}

// hueRanges restricts generated hues to bands that read well on the scene
// background.
var hueRanges = [][2]float64{
	{300, 330}, // purple-pink
	{200, 240}, // blue
	{120, 160}, // green
	{30, 60},   // yellow-orange
	{270, 300}, // purple
}

func idToColor(id string) string {
	h := hashID(id)
	r := hueRanges[h%uint64(len(hueRanges))]
	hue := math.Mod(float64(h)*137.508, r[1]-r[0]) + r[0]
	saturation := 40 + h%20
	lightness := 70 + h%15
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", int(hue), saturation, lightness)
}

func hashID(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// idSeed derives a stable jitter seed from the record ID, falling back to
// the list index for records without one.
func idSeed(id string, index int) float64 {
	if id == "" {
		return float64(index)
	}
	return float64(hashID(id) % 100000)
}

// seededRandom is a deterministic [0,1) value for a seed. Same formula as
// the front-end scene code, so server and client jitter agree.
func seededRandom(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}
