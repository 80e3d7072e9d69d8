package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/signalnine/compactsim/internal/compaction"
	"github.com/signalnine/compactsim/internal/i18n"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cylinder presets and trial types",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Cylinders:")
			if len(rt.cfg.Cylinders) == 0 {
				fmt.Fprintln(out, "  (none configured)")
			}
			for _, c := range rt.cfg.Cylinders {
				fmt.Fprintf(out, "  - %s (weight: %g g, volume: %g L)\n", c.Name, c.WeightGrams, c.VolumeLiters)
			}
			fmt.Fprintln(out, "\nTrial types:")
			for _, t := range []compaction.TrialType{compaction.Embankment1, compaction.Subbase2} {
				r := compaction.DegreeRangeFor(t)
				fmt.Fprintf(out, "  - %s: %s [compaction %.1f-%.1f%%]\n", t, i18n.TrialTypeLabel(rt.printer, t), r.Min, r.Max)
			}
			fmt.Fprintln(out, "\nLocales:")
			fmt.Fprintf(out, "  %s\n", strings.Join(i18n.Supported(), ", "))
			return nil
		},
	}
}
