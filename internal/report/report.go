package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/message"

	"github.com/signalnine/compactsim/internal/compaction"
	"github.com/signalnine/compactsim/internal/i18n"
)

// Summary holds batch means computed from unrounded trial values.
type Summary struct {
	Trials              int     `json:"trials"`
	MeanMoisturePercent float64 `json:"mean_moisture_percent"`
	MeanDegreePercent   float64 `json:"mean_compaction_degree_percent"`
	MeanDryDensity      float64 `json:"mean_dry_density"`
}

type jsonReport struct {
	Parameters compaction.TrialParameters `json:"parameters"`
	Trials     []compaction.DisplayTrial  `json:"trials"`
	Summary    Summary                    `json:"summary"`
}

// Formats lists the accepted values for Render's format argument.
var Formats = []string{"table", "markdown", "json"}

// Render writes a batch in the requested format. Unknown formats fall back to
// table. Labels and numbers in table and markdown output follow p's locale;
// JSON output is locale independent.
func Render(w io.Writer, params compaction.TrialParameters, results []compaction.TrialResult, format string, p *message.Printer) error {
	summary := Summarize(results)

	switch format {
	case "markdown":
		return writeMarkdown(w, params, results, summary, p)
	case "json":
		return writeJSON(w, params, results, summary)
	default:
		return writeTable(w, params, results, summary, p)
	}
}

// Summarize computes batch means. An empty batch yields a zero Summary.
func Summarize(results []compaction.TrialResult) Summary {
	s := Summary{Trials: len(results)}
	if len(results) == 0 {
		return s
	}
	for _, r := range results {
		s.MeanMoisturePercent += r.MoisturePercent
		s.MeanDegreePercent += r.CompactionDegreePercent
		s.MeanDryDensity += r.DryDensity
	}
	n := float64(len(results))
	s.MeanMoisturePercent /= n
	s.MeanDegreePercent /= n
	s.MeanDryDensity /= n
	return s
}

func headers(p *message.Printer) []string {
	keys := []string{
		"report.index", "report.moisture", "report.degree", "report.dry_density",
		"report.wet_density", "report.soil_weight", "report.total_weight", "report.delta",
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = p.Sprintf(k)
	}
	return out
}

func row(p *message.Printer, r compaction.TrialResult) []string {
	d := r.Display()
	return []string{
		p.Sprintf("%d", d.Index),
		p.Sprintf("%.1f", d.MoisturePercent),
		p.Sprintf("%.1f", d.CompactionDegreePercent),
		p.Sprintf("%.3f", d.DryDensity),
		p.Sprintf("%.3f", d.WetDensity),
		p.Sprintf("%d", d.SoilWeightGrams),
		p.Sprintf("%d", d.TotalWeightGrams),
		p.Sprintf("%+.2f", d.MoistureDeltaPercent),
	}
}

func preamble(p *message.Printer, params compaction.TrialParameters) (title, detail string) {
	title = p.Sprintf("report.title", i18n.TrialTypeLabel(p, params.TrialType))
	detail = p.Sprintf("report.parameters",
		int64(compaction.Round(params.CylinderWeightGrams, 0)),
		params.CylinderVolumeLiters,
		params.MaxDryDensity,
		params.OptimalMoisturePercent,
	)
	return title, detail
}

func summaryLine(p *message.Printer, s Summary) string {
	return p.Sprintf("report.summary", s.MeanMoisturePercent, s.MeanDegreePercent, s.MeanDryDensity)
}

func writeTable(w io.Writer, params compaction.TrialParameters, results []compaction.TrialResult, s Summary, p *message.Printer) error {
	title, detail := preamble(p, params)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, detail)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers(p), "\t"))
	fmt.Fprintln(tw, strings.Repeat("-", 96))
	for _, r := range results {
		fmt.Fprintln(tw, strings.Join(row(p, r), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, summaryLine(p, s))
	return err
}

func writeMarkdown(w io.Writer, params compaction.TrialParameters, results []compaction.TrialResult, s Summary, p *message.Printer) error {
	title, detail := preamble(p, params)
	fmt.Fprintf(w, "## %s\n\n%s\n\n", title, detail)

	h := headers(p)
	fmt.Fprintf(w, "| %s |\n", strings.Join(h, " | "))
	fmt.Fprintf(w, "|%s\n", strings.Repeat("---|", len(h)))
	for _, r := range results {
		fmt.Fprintf(w, "| %s |\n", strings.Join(row(p, r), " | "))
	}
	_, err := fmt.Fprintf(w, "\n%s\n", summaryLine(p, s))
	return err
}

func writeJSON(w io.Writer, params compaction.TrialParameters, results []compaction.TrialResult, s Summary) error {
	out := jsonReport{
		Parameters: params,
		Trials:     make([]compaction.DisplayTrial, len(results)),
		Summary:    s,
	}
	for i, r := range results {
		out.Trials[i] = r.Display()
	}
	out.Summary.MeanMoisturePercent = compaction.Round(s.MeanMoisturePercent, 2)
	out.Summary.MeanDegreePercent = compaction.Round(s.MeanDegreePercent, 2)
	out.Summary.MeanDryDensity = compaction.Round(s.MeanDryDensity, 3)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
