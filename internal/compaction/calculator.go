package compaction

import "math"

// Calculate derives a full trial record from one sampled moisture and
// compaction degree. It is pure: the same inputs always produce the same record.
// Values are left unrounded apart from the moisture delta.
func Calculate(index int, moisturePercent, degreePercent float64, params TrialParameters) (TrialResult, error) {
	if !positive(params.CylinderVolumeLiters) {
		return TrialResult{}, outOfRange("cylinder_volume_liters", "must be positive, got %v", params.CylinderVolumeLiters)
	}
	if !positive(params.MaxDryDensity) {
		return TrialResult{}, outOfRange("max_dry_density", "must be positive, got %v", params.MaxDryDensity)
	}

	dry := (degreePercent * params.MaxDryDensity) / 100
	wet := ((100 + moisturePercent) * dry) / 100
	volumeCm3 := params.CylinderVolumeLiters * 1000
	soil := wet * volumeCm3

	return TrialResult{
		Index:                   index,
		MoisturePercent:         moisturePercent,
		CompactionDegreePercent: degreePercent,
		DryDensity:              dry,
		WetDensity:              wet,
		SoilWeightGrams:         soil,
		TotalWeightGrams:        soil + params.CylinderWeightGrams,
		MoistureDeltaPercent:    Round(moisturePercent-params.OptimalMoisturePercent, 2),
	}, nil
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
