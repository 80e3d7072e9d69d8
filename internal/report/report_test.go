package report_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/signalnine/compactsim/internal/compaction"
	"github.com/signalnine/compactsim/internal/i18n"
	"github.com/signalnine/compactsim/internal/report"
)

func fixture(t *testing.T) (compaction.TrialParameters, []compaction.TrialResult) {
	t.Helper()
	params := compaction.TrialParameters{
		CylinderWeightGrams:    1000,
		CylinderVolumeLiters:   1.0,
		MaxDryDensity:          2.0,
		OptimalMoisturePercent: 7.5,
		TrialType:              compaction.Subbase2,
		Count:                  2,
	}
	samples := [][2]float64{{7.0, 100.0}, {6.6, 101.0}}
	results := make([]compaction.TrialResult, len(samples))
	for i, s := range samples {
		r, err := compaction.Calculate(i+1, s[0], s[1], params)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		results[i] = r
	}
	return params, results
}

func TestRenderTable(t *testing.T) {
	params, results := fixture(t)
	p, err := i18n.NewPrinter("en-US")
	if err != nil {
		t.Fatalf("NewPrinter: %v", err)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, params, results, "table", p); err != nil {
		t.Fatalf("Render: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"2nd embankment/sub-base", "MOISTURE (%)", "100.0", "2.140", "Mean moisture"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRenderUnknownFormatFallsBackToTable(t *testing.T) {
	params, results := fixture(t)
	p, _ := i18n.NewPrinter("en-US")

	var table, fallback bytes.Buffer
	report.Render(&table, params, results, "table", p)
	report.Render(&fallback, params, results, "csv", p)
	if table.String() != fallback.String() {
		t.Error("expected unknown format to render as table")
	}
}

func TestRenderMarkdown(t *testing.T) {
	params, results := fixture(t)
	p, _ := i18n.NewPrinter("en-US")

	var buf bytes.Buffer
	if err := report.Render(&buf, params, results, "markdown", p); err != nil {
		t.Fatalf("Render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var rows int
	for _, l := range lines {
		if strings.HasPrefix(l, "| ") {
			rows++
		}
	}
	// header + two trials
	if rows != 3 {
		t.Errorf("expected 3 table rows, got %d:\n%s", rows, buf.String())
	}
	if !strings.HasPrefix(lines[0], "## ") {
		t.Errorf("expected markdown heading, got %q", lines[0])
	}
}

func TestRenderLocalized(t *testing.T) {
	params, results := fixture(t)
	p, _ := i18n.NewPrinter("pt-BR")

	var buf bytes.Buffer
	if err := report.Render(&buf, params, results, "table", p); err != nil {
		t.Fatalf("Render: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"UMIDADE (%)", "2º aterro/sub-base", "100,0"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	params, results := fixture(t)
	p, _ := i18n.NewPrinter("pt-BR")

	var buf bytes.Buffer
	if err := report.Render(&buf, params, results, "json", p); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got struct {
		Parameters struct {
			TrialType string `json:"trial_type"`
			Count     int    `json:"count"`
		} `json:"parameters"`
		Trials  []compaction.DisplayTrial `json:"trials"`
		Summary report.Summary            `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Parameters.TrialType != "SUBBASE_2" || got.Parameters.Count != 2 {
		t.Errorf("unexpected parameters: %+v", got.Parameters)
	}
	if len(got.Trials) != 2 {
		t.Fatalf("expected 2 trials, got %d", len(got.Trials))
	}
	first := got.Trials[0]
	if first.Index != 1 || first.DryDensity != 2.0 || first.WetDensity != 2.14 {
		t.Errorf("unexpected first trial: %+v", first)
	}
	if first.SoilWeightGrams != 2140 || first.TotalWeightGrams != 3140 {
		t.Errorf("unexpected weights: %+v", first)
	}
	if first.MoistureDeltaPercent != -0.5 {
		t.Errorf("delta = %v, want -0.5", first.MoistureDeltaPercent)
	}
	if got.Summary.Trials != 2 || got.Summary.MeanMoisturePercent != 6.8 {
		t.Errorf("unexpected summary: %+v", got.Summary)
	}
}

func TestSummarize(t *testing.T) {
	_, results := fixture(t)
	s := report.Summarize(results)
	if s.Trials != 2 {
		t.Errorf("trials = %d, want 2", s.Trials)
	}
	if math.Abs(s.MeanDegreePercent-100.5) > 1e-9 {
		t.Errorf("mean degree = %v, want 100.5", s.MeanDegreePercent)
	}
	if math.Abs(s.MeanDryDensity-2.01) > 1e-9 {
		t.Errorf("mean dry density = %v, want 2.01", s.MeanDryDensity)
	}

	if empty := report.Summarize(nil); empty != (report.Summary{}) {
		t.Errorf("expected zero summary, got %+v", empty)
	}
}
