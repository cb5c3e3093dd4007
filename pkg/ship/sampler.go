package ship

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lintang-b-s/shiproute/pkg"
	"github.com/lintang-b-s/shiproute/pkg/units"
)

// EnvironmentSample is the weather a boat sees at one waypoint.
type EnvironmentSample struct {
	WaveHeight units.Meter
	WindSpeed  units.MeterPerSecond
}

type EnvironmentSampler interface {
	Sample(lat, lon float64, t time.Time) EnvironmentSample
}

// SyntheticSampler draws placeholder weather from an injected random source:
// wave height uniform in [0.5, 3.0) m, wind speed uniform in [0, 15) m/s.
// Position and time are ignored. Safe for concurrent use; callers sharing one
// sampler share its sequence.
type SyntheticSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSyntheticSampler(src rand.Source) *SyntheticSampler {
	return &SyntheticSampler{rng: rand.New(src)}
}

// NewSeededSampler is a reproducible sampler: equal seeds give equal sequences.
func NewSeededSampler(seed uint64) *SyntheticSampler {
	return NewSyntheticSampler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *SyntheticSampler) Sample(lat, lon float64, t time.Time) EnvironmentSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	wave := uniform(s.rng, pkg.MIN_SYNTHETIC_WAVE_HEIGHT, pkg.MAX_SYNTHETIC_WAVE_HEIGHT)
	wind := uniform(s.rng, pkg.MIN_SYNTHETIC_WIND_SPEED, pkg.MAX_SYNTHETIC_WIND_SPEED)
	return EnvironmentSample{
		WaveHeight: units.Meter(wave),
		WindSpeed:  units.MeterPerSecond(wind),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
