package engine

import (
	"math/rand"
	"sync"

	"github.com/serenpaths/seren/internal/types"
)

// Sampler performs roulette-wheel selection over scored candidates. It is
// the only non-deterministic component in the pipeline; the random source
// is injected so tests can replay fixed sequences.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a sampler over the given source. rand.Rand is not
// safe for concurrent use, so every draw takes the mutex.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// Select draws one candidate with probability proportional to its score.
// When every candidate scored zero the draw degenerates to a uniform
// choice. The walk follows insertion order, so a given random value always
// lands on the same candidate.
//
// Select never fabricates data: an empty input returns ok=false and the
// caller must substitute a fallback challenge.
func (s *Sampler) Select(scored []types.ScoredCandidate) (types.Challenge, bool) {
	if len(scored) == 0 {
		return types.Challenge{}, false
	}

	total := 0.0
	for _, sc := range scored {
		total += sc.Score
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if total == 0 {
		return scored[s.rng.Intn(len(scored))].Challenge, true
	}

	r := s.rng.Float64() * total
	cumulative := 0.0
	for _, sc := range scored {
		cumulative += sc.Score
		if cumulative >= r {
			return sc.Challenge, true
		}
	}

	// Floating-point accumulation can leave r a hair above the final
	// cumulative sum.
	return scored[len(scored)-1].Challenge, true
}

// Chance returns true with probability p.
func (s *Sampler) Chance(p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < p
}
