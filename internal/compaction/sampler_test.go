package compaction_test

import (
	"errors"
	"math"
	"testing"

	"github.com/signalnine/compactsim/internal/compaction"
	"github.com/signalnine/compactsim/internal/random"
)

func TestMoistureLadder(t *testing.T) {
	ladder, err := compaction.MoistureLadder(7.4)
	if err != nil {
		t.Fatalf("MoistureLadder returned error: %v", err)
	}
	if len(ladder) != 10 {
		t.Fatalf("expected 10 rungs, got %d: %v", len(ladder), ladder)
	}
	for i, v := range ladder {
		want := 6.4 + float64(i)*0.1
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("rung %d = %v, want %v", i, v, want)
		}
	}
	if ladder[0] != 6.4 || ladder[9] != 7.3 {
		t.Errorf("ladder bounds = [%v, %v], want [6.4, 7.3]", ladder[0], ladder[9])
	}
}

func TestMoistureLadderAlwaysTenRungs(t *testing.T) {
	for _, opt := range []float64{0, 1.0, 7.4, 12.3, 20, 100, -3.2} {
		ladder, err := compaction.MoistureLadder(opt)
		if err != nil {
			t.Fatalf("MoistureLadder(%v) returned error: %v", opt, err)
		}
		if len(ladder) != 10 {
			t.Errorf("MoistureLadder(%v) has %d rungs, want 10", opt, len(ladder))
		}
		for i := 1; i < len(ladder); i++ {
			if step := ladder[i] - ladder[i-1]; math.Abs(step-0.1) > 1e-9 {
				t.Errorf("MoistureLadder(%v) step %d = %v, want 0.1", opt, i, step)
			}
		}
	}
}

func TestMoistureLadderHalfStepOptimum(t *testing.T) {
	for _, opt := range []float64{0.05, 5.55, 11.85, 12.35, 19.99} {
		ladder, err := compaction.MoistureLadder(opt)
		if err != nil {
			t.Fatalf("MoistureLadder(%v) returned error: %v", opt, err)
		}
		if len(ladder) < 9 || len(ladder) > 11 {
			t.Errorf("MoistureLadder(%v) has %d rungs", opt, len(ladder))
		}
		for _, v := range ladder {
			if v < opt-1.05-1e-9 || v > opt-0.05+1e-9 {
				t.Errorf("MoistureLadder(%v) rung %v outside rounding tolerance", opt, v)
			}
		}
	}
}

func TestMoistureLadderRejectsNonFinite(t *testing.T) {
	for _, opt := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := compaction.MoistureLadder(opt)
		if !errors.Is(err, compaction.ErrInvalidRange) {
			t.Errorf("MoistureLadder(%v) error = %v, want %v", opt, err, compaction.ErrInvalidRange)
		}
	}
}

func TestMoistureLadderRejectsOverflow(t *testing.T) {
	for _, opt := range []float64{1e308, math.MaxFloat64, -math.MaxFloat64} {
		ladder, err := compaction.MoistureLadder(opt)
		if !errors.Is(err, compaction.ErrInvalidRange) {
			t.Errorf("MoistureLadder(%v) = %v, %v; want %v", opt, ladder, err, compaction.ErrInvalidRange)
		}
	}

	params := compaction.TrialParameters{
		CylinderWeightGrams:    964,
		CylinderVolumeLiters:   1.5,
		MaxDryDensity:          1.883,
		OptimalMoisturePercent: 1e308,
		TrialType:              compaction.Embankment1,
		Count:                  2,
	}
	results, err := compaction.GenerateTrials(&scriptedSource{}, params)
	if !errors.Is(err, compaction.ErrInvalidRange) {
		t.Fatalf("GenerateTrials error = %v, want %v", err, compaction.ErrInvalidRange)
	}
	if results != nil {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSampleMoistureValuesUsesLadder(t *testing.T) {
	src := &scriptedSource{ints: []int{0, 9, 4, 4}}
	got, err := compaction.SampleMoistureValues(src, 7.4, 4)
	if err != nil {
		t.Fatalf("SampleMoistureValues returned error: %v", err)
	}
	want := []float64{6.4, 7.3, 6.8, 6.8}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], want[i])
		}
	}
	for _, n := range src.intN {
		if n != 10 {
			t.Errorf("IntN called with %d, want 10", n)
		}
	}
}

func TestSampleMoistureValuesZeroCount(t *testing.T) {
	got, err := compaction.SampleMoistureValues(&scriptedSource{}, 7.4, 0)
	if err != nil {
		t.Fatalf("SampleMoistureValues returned error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSampleMoistureValuesBounds(t *testing.T) {
	src := random.NewSource(7)
	for _, opt := range []float64{3.3, 7.4, 11.85, 15} {
		values, err := compaction.SampleMoistureValues(src, opt, 200)
		if err != nil {
			t.Fatalf("SampleMoistureValues(%v) returned error: %v", opt, err)
		}
		for _, m := range values {
			if m < opt-1.0-0.05-1e-9 || m > opt-0.1+0.05+1e-9 {
				t.Errorf("optimum %v: moisture %v outside [%v, %v]", opt, m, opt-1.0, opt-0.1)
			}
			if tenths := m * 10; math.Abs(tenths-math.Round(tenths)) > 1e-9 {
				t.Errorf("optimum %v: moisture %v is not a multiple of 0.1", opt, m)
			}
		}
	}
}

func TestSampleCompactionDegree(t *testing.T) {
	tests := []struct {
		name string
		typ  compaction.TrialType
		draw float64
		want float64
	}{
		{"embankment lower bound", compaction.Embankment1, 0, 94.5},
		{"embankment upper bound", compaction.Embankment1, 0.9999999, 96.4},
		{"embankment midpoint", compaction.Embankment1, 0.5, 95.5},
		{"subbase lower bound", compaction.Subbase2, 0, 100.0},
		{"subbase upper bound", compaction.Subbase2, 0.9999999, 102.0},
		{"subbase midpoint", compaction.Subbase2, 0.5, 101.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compaction.SampleCompactionDegree(&scriptedSource{floats: []float64{tt.draw}}, tt.typ)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SampleCompactionDegree(%v) with draw %v = %v, want %v", tt.typ, tt.draw, got, tt.want)
			}
		})
	}
}

func TestSampleCompactionDegreeBounds(t *testing.T) {
	src := random.NewSource(99)
	for _, typ := range []compaction.TrialType{compaction.Embankment1, compaction.Subbase2} {
		r := compaction.DegreeRangeFor(typ)
		for i := 0; i < 500; i++ {
			d := compaction.SampleCompactionDegree(src, typ)
			if d < r.Min || d > r.Max {
				t.Fatalf("%v: degree %v outside [%v, %v]", typ, d, r.Min, r.Max)
			}
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		x        float64
		decimals int
		want     float64
	}{
		{6.449999, 1, 6.4},
		{6.45, 2, 6.45},
		{-0.6000000000000005, 2, -0.6},
		{2865.74, 0, 2866},
		{1.9104918, 3, 1.91},
	}
	for _, tt := range tests {
		if got := compaction.Round(tt.x, tt.decimals); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.x, tt.decimals, got, tt.want)
		}
	}
}
