// Package input turns user-entered strings into validated trial parameters.
//
// Technicians type numbers the way their locale writes them ("1,883" or
// "1.883"), may enter the maximum dry density in kg/m³, and pick the trial type
// by a short name. Everything here runs before the engine sees the values.
package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signalnine/compactsim/internal/compaction"
)

// DensityUnit is the unit the maximum dry density was entered in.
type DensityUnit string

const (
	GramsPerCm3 DensityUnit = "g/cm3"
	KgPerM3     DensityUnit = "kg/m3"
)

// ParseDensityUnit accepts the common spellings of both units.
func ParseDensityUnit(s string) (DensityUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "g/cm3", "g/cm³", "gcm3":
		return GramsPerCm3, nil
	case "kg/m3", "kg/m³", "kgm3":
		return KgPerM3, nil
	default:
		return "", fmt.Errorf("unknown density unit %q (valid: g/cm3, kg/m3)", s)
	}
}

// ToGramsPerCm3 converts v from unit u.
func (u DensityUnit) ToGramsPerCm3(v float64) float64 {
	if u == KgPerM3 {
		return v / 1000
	}
	return v
}

// Raw holds the parameters exactly as the user entered them.
type Raw struct {
	CylinderWeight  string
	CylinderVolume  string
	MaxDryDensity   string
	OptimalMoisture string
	TrialType       string
	Count           string
}

// Options control normalization. A zero DensityMin/DensityMax disables the
// plausibility check on that side.
type Options struct {
	DensityUnit DensityUnit
	DensityMin  float64
	DensityMax  float64
}

// Parse converts raw user input into TrialParameters. It reports the first
// problem found as a *compaction.ParameterError.
func Parse(raw Raw, opts Options) (compaction.TrialParameters, error) {
	var params compaction.TrialParameters
	var err error

	if params.CylinderWeightGrams, err = ParseDecimal("cylinder_weight_grams", raw.CylinderWeight); err != nil {
		return compaction.TrialParameters{}, err
	}
	if params.CylinderVolumeLiters, err = ParseDecimal("cylinder_volume_liters", raw.CylinderVolume); err != nil {
		return compaction.TrialParameters{}, err
	}
	density, err := ParseDecimal("max_dry_density", raw.MaxDryDensity)
	if err != nil {
		return compaction.TrialParameters{}, err
	}
	if params.OptimalMoisturePercent, err = ParseDecimal("optimal_moisture_percent", raw.OptimalMoisture); err != nil {
		return compaction.TrialParameters{}, err
	}

	if strings.TrimSpace(raw.TrialType) == "" {
		return compaction.TrialParameters{}, missing("trial_type")
	}
	if params.TrialType, err = compaction.ParseTrialType(raw.TrialType); err != nil {
		return compaction.TrialParameters{}, &compaction.ParameterError{
			Kind:   compaction.ErrInvalidParameter,
			Field:  "trial_type",
			Reason: compaction.ReasonUnknown,
			Msg:    strings.TrimSpace(raw.TrialType),
			Cause:  err,
		}
	}

	if params.Count, err = ParseCount(raw.Count); err != nil {
		return compaction.TrialParameters{}, err
	}

	unit := opts.DensityUnit
	if unit == "" {
		unit = GramsPerCm3
	}
	params.MaxDryDensity = unit.ToGramsPerCm3(density)
	if err := checkDensity(params.MaxDryDensity, unit, opts); err != nil {
		return compaction.TrialParameters{}, err
	}

	return params, nil
}

// ParseDecimal parses a number written with either a comma or a period as the
// decimal separator. When both appear, the last one is the decimal separator
// and the other is treated as digit grouping ("1.883,5" and "1,883.5").
func ParseDecimal(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, missing(field)
	}
	s = strings.ReplaceAll(s, " ", "")

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &compaction.ParameterError{
			Kind:   compaction.ErrInvalidParameter,
			Field:  field,
			Reason: compaction.ReasonMalformed,
			Msg:    fmt.Sprintf("%q is not a number", s),
		}
	}
	return v, nil
}

// ParseCount parses the number of trials. Range checks are left to the engine.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, missing("count")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &compaction.ParameterError{
			Kind:   compaction.ErrInvalidParameter,
			Field:  "count",
			Reason: compaction.ReasonMalformed,
			Msg:    fmt.Sprintf("%q is not a whole number", s),
		}
	}
	return n, nil
}

func checkDensity(v float64, unit DensityUnit, opts Options) error {
	if v <= 0 {
		return &compaction.ParameterError{
			Kind:   compaction.ErrInvalidParameter,
			Field:  "max_dry_density",
			Reason: compaction.ReasonOutOfRange,
			Msg:    fmt.Sprintf("must be positive, got %v", v),
		}
	}
	tooLow := opts.DensityMin > 0 && v < opts.DensityMin
	tooHigh := opts.DensityMax > 0 && v > opts.DensityMax
	if !tooLow && !tooHigh {
		return nil
	}
	msg := fmt.Sprintf("%.3f g/cm3 is outside the plausible range %.2f-%.2f", v, opts.DensityMin, opts.DensityMax)
	if tooHigh && unit == GramsPerCm3 && v/1000 >= opts.DensityMin {
		msg += " (value looks like kg/m3; pass --density-unit kg/m3)"
	}
	return &compaction.ParameterError{
		Kind:   compaction.ErrInvalidParameter,
		Field:  "max_dry_density",
		Reason: compaction.ReasonOutOfRange,
		Msg:    msg,
	}
}

func missing(field string) error {
	return &compaction.ParameterError{
		Kind:   compaction.ErrMissingParameter,
		Field:  field,
		Reason: compaction.ReasonMissing,
	}
}
