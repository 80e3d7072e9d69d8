package compaction

import (
	"context"
	"log/slog"

	"github.com/signalnine/compactsim/internal/logging"
)

// DefaultMaxCount bounds the batch size when a Generator has no explicit limit.
const DefaultMaxCount = 1000

// Generator produces trial batches. A Generator is not safe for concurrent use
// because its Source usually is not; build one per request.
type Generator struct {
	Source   Source
	Logger   *slog.Logger
	MaxCount int
}

// GenerateTrials builds a batch with the default count limit and no logging.
func GenerateTrials(src Source, params TrialParameters) ([]TrialResult, error) {
	return (&Generator{Source: src}).Generate(params)
}

// Generate validates params, samples one moisture value per trial from the
// ladder, samples a compaction degree for each trial and derives the rest.
//
// The result is all or nothing: either params.Count records indexed 1..Count
// in generation order, or nil and a single error.
func (g *Generator) Generate(params TrialParameters) ([]TrialResult, error) {
	log := g.logger()

	if err := Validate(params, g.maxCount()); err != nil {
		log.Debug("rejected trial parameters", "error", err)
		return nil, err
	}

	moistures, err := SampleMoistureValues(g.Source, params.OptimalMoisturePercent, params.Count)
	if err != nil {
		return nil, err
	}

	log.Debug("generating trials",
		"type", params.TrialType.String(),
		"count", params.Count,
		"optimal_moisture", params.OptimalMoisturePercent,
	)

	results := make([]TrialResult, 0, params.Count)
	for i := 1; i <= params.Count; i++ {
		degree := SampleCompactionDegree(g.Source, params.TrialType)
		moisture := moistures[i-1]
		log.Log(context.Background(), logging.LevelTrace, "sampled trial", "index", i, "moisture", moisture, "degree", degree)

		r, err := Calculate(i, moisture, degree, params)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Validate checks params before any sampling happens.
func Validate(params TrialParameters, maxCount int) error {
	if params.TrialType == TrialTypeUnspecified {
		return missing("trial_type")
	}
	if params.TrialType != Embankment1 && params.TrialType != Subbase2 {
		return outOfRange("trial_type", "unknown trial type %d", int(params.TrialType))
	}
	if !finite(params.CylinderWeightGrams) || params.CylinderWeightGrams <= 0 {
		return outOfRange("cylinder_weight_grams", "must be positive, got %v", params.CylinderWeightGrams)
	}
	if !positive(params.CylinderVolumeLiters) {
		return outOfRange("cylinder_volume_liters", "must be positive, got %v", params.CylinderVolumeLiters)
	}
	if !positive(params.MaxDryDensity) {
		return outOfRange("max_dry_density", "must be positive, got %v", params.MaxDryDensity)
	}
	if !finite(params.OptimalMoisturePercent) {
		return outOfRange("optimal_moisture_percent", "must be a finite number, got %v", params.OptimalMoisturePercent)
	}
	if params.Count < 1 {
		return outOfRange("count", "must be at least 1, got %d", params.Count)
	}
	if maxCount > 0 && params.Count > maxCount {
		return outOfRange("count", "must be at most %d, got %d", maxCount, params.Count)
	}
	return nil
}

func (g *Generator) maxCount() int {
	if g.MaxCount > 0 {
		return g.MaxCount
	}
	return DefaultMaxCount
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return logging.Discard()
}
