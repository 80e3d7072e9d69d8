// Package compaction generates simulated soil-compaction trial batches.
//
// A batch is built from a cylinder's physical parameters and a target optimum
// moisture. Moisture values are drawn from a fixed ladder just below the optimum,
// compaction degrees are drawn per trial from a range that depends on the layer
// being compacted, and every dependent quantity (densities, weights) is derived
// deterministically from those two samples.
package compaction

import (
	"fmt"
	"strings"
)

// TrialType selects the compaction-degree range used for a batch.
type TrialType int

const (
	TrialTypeUnspecified TrialType = iota
	Embankment1
	Subbase2
)

func (t TrialType) String() string {
	switch t {
	case Embankment1:
		return "EMBANKMENT_1"
	case Subbase2:
		return "SUBBASE_2"
	default:
		return "UNSPECIFIED"
	}
}

// Label is the human-readable layer name.
func (t TrialType) Label() string {
	switch t {
	case Embankment1:
		return "1st embankment/connection"
	case Subbase2:
		return "2nd embankment/sub-base"
	default:
		return "unspecified"
	}
}

// ParseTrialType accepts the canonical names and the short forms a lab
// technician would type ("1", "2", "embankment", "subbase").
func ParseTrialType(s string) (TrialType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "embankment_1", "embankment1", "embankment":
		return Embankment1, nil
	case "2", "subbase_2", "subbase2", "subbase", "sub-base":
		return Subbase2, nil
	default:
		return TrialTypeUnspecified, fmt.Errorf("unknown trial type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t TrialType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TrialType) UnmarshalText(text []byte) error {
	parsed, err := ParseTrialType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TrialParameters are the caller-supplied inputs for one batch.
// MaxDryDensity is in g/cm³ and OptimalMoisturePercent is a raw percentage (7.4, not 0.074).
type TrialParameters struct {
	CylinderWeightGrams    float64   `json:"cylinder_weight_grams"`
	CylinderVolumeLiters   float64   `json:"cylinder_volume_liters"`
	MaxDryDensity          float64   `json:"max_dry_density"`
	OptimalMoisturePercent float64   `json:"optimal_moisture_percent"`
	TrialType              TrialType `json:"trial_type"`
	Count                  int       `json:"count"`
}

// TrialResult is one generated trial. Values are kept unrounded; use Display
// for presentation.
type TrialResult struct {
	Index                   int
	MoisturePercent         float64
	CompactionDegreePercent float64
	DryDensity              float64
	WetDensity              float64
	SoilWeightGrams         float64
	TotalWeightGrams        float64
	MoistureDeltaPercent    float64
}

// DisplayTrial is a TrialResult with presentation rounding applied.
type DisplayTrial struct {
	Index                   int     `json:"index"`
	MoisturePercent         float64 `json:"moisture_percent"`
	CompactionDegreePercent float64 `json:"compaction_degree_percent"`
	DryDensity              float64 `json:"dry_density"`
	WetDensity              float64 `json:"wet_density"`
	SoilWeightGrams         int64   `json:"soil_weight_grams"`
	TotalWeightGrams        int64   `json:"total_weight_grams"`
	MoistureDeltaPercent    float64 `json:"moisture_delta_percent"`
}

// Display rounds weights to whole grams, densities to 3 decimals, moisture and
// compaction degree to 1 decimal and the moisture delta to 2 decimals.
func (r TrialResult) Display() DisplayTrial {
	return DisplayTrial{
		Index:                   r.Index,
		MoisturePercent:         Round(r.MoisturePercent, 1),
		CompactionDegreePercent: Round(r.CompactionDegreePercent, 1),
		DryDensity:              Round(r.DryDensity, 3),
		WetDensity:              Round(r.WetDensity, 3),
		SoilWeightGrams:         int64(Round(r.SoilWeightGrams, 0)),
		TotalWeightGrams:        int64(Round(r.TotalWeightGrams, 0)),
		MoistureDeltaPercent:    Round(r.MoistureDeltaPercent, 2),
	}
}
