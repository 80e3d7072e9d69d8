package compaction

import "math"

// Source is the uniform randomness the samplers draw from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

const (
	moistureLowOffset  = 1.0
	moistureHighOffset = 0.1
	moistureStep       = 0.1
)

// DegreeRange is an inclusive compaction-degree interval in percent.
type DegreeRange struct {
	Min float64
	Max float64
}

// DegreeRangeFor returns the compaction-degree interval sampled for a trial type.
func DegreeRangeFor(t TrialType) DegreeRange {
	if t == Embankment1 {
		return DegreeRange{Min: 94.5, Max: 96.4}
	}
	return DegreeRange{Min: 100.0, Max: 102.0}
}

// MoistureLadder returns the candidate moisture values for an optimum: the
// 0.1-step ladder from optimum-1.0 to optimum-0.1, each rounded to 1 decimal.
// Every rung is computed as low + i*step so no error accumulates along the ladder.
func MoistureLadder(optimalMoisturePercent float64) ([]float64, error) {
	if math.IsNaN(optimalMoisturePercent) || math.IsInf(optimalMoisturePercent, 0) {
		return nil, invalidRange("optimum %v is not a finite number", optimalMoisturePercent)
	}

	low := Round(optimalMoisturePercent-moistureLowOffset, 1)
	high := Round(optimalMoisturePercent-moistureHighOffset, 1)
	if !finite(low) || !finite(high) {
		return nil, invalidRange("optimum %v gives a non-finite ladder", optimalMoisturePercent)
	}
	steps := int(math.Round((high-low)/moistureStep)) + 1
	if steps <= 0 {
		return nil, invalidRange("empty ladder between %.1f and %.1f", low, high)
	}

	ladder := make([]float64, steps)
	for i := range ladder {
		ladder[i] = Round(low+float64(i)*moistureStep, 1)
	}
	return ladder, nil
}

// SampleMoistureValues draws count values uniformly, with replacement, from the
// moisture ladder for the given optimum. A count of zero yields an empty slice.
func SampleMoistureValues(src Source, optimalMoisturePercent float64, count int) ([]float64, error) {
	ladder, err := MoistureLadder(optimalMoisturePercent)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []float64{}, nil
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = ladder[src.IntN(len(ladder))]
	}
	return values, nil
}

// SampleCompactionDegree draws one compaction degree for the trial type,
// uniformly over its continuous range, rounded to 1 decimal.
func SampleCompactionDegree(src Source, t TrialType) float64 {
	r := DegreeRangeFor(t)
	return Round(r.Min+src.Float64()*(r.Max-r.Min), 1)
}

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(x*scale) / scale
}
