package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/signalnine/compactsim/internal/compaction"
	"github.com/signalnine/compactsim/internal/config"
	"github.com/signalnine/compactsim/internal/i18n"
	"github.com/signalnine/compactsim/internal/input"
	"github.com/signalnine/compactsim/internal/random"
	"github.com/signalnine/compactsim/internal/report"
)

var (
	flagCylinder        string
	flagCylinderWeight  string
	flagCylinderVolume  string
	flagMaxDryDensity   string
	flagDensityUnit     string
	flagOptimalMoisture string
	flagType            string
	flagCount           string
	flagSeed            int64
	flagFormat          string
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of simulated compaction trials",
		Long: `Generate a batch of simulated compaction trials.

Numbers may use a comma or a period as the decimal separator. Cylinder weight
and volume can come from a preset in the config file (--cylinder); explicit
flags override the preset.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	cmd.Flags().StringVar(&flagCylinder, "cylinder", "", "cylinder preset name from the config file")
	cmd.Flags().StringVar(&flagCylinderWeight, "cylinder-weight", "", "cylinder weight in grams")
	cmd.Flags().StringVar(&flagCylinderVolume, "cylinder-volume", "", "cylinder volume in liters")
	cmd.Flags().StringVar(&flagMaxDryDensity, "max-dry-density", "", "maximum dry density")
	cmd.Flags().StringVar(&flagDensityUnit, "density-unit", "", "unit of --max-dry-density (g/cm3, kg/m3)")
	cmd.Flags().StringVar(&flagOptimalMoisture, "optimal-moisture", "", "optimum moisture in percent")
	cmd.Flags().StringVar(&flagType, "type", "", "trial type: 1 (embankment/connection) or 2 (sub-base)")
	cmd.Flags().StringVar(&flagCount, "count", "", "number of trials")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed for a reproducible batch")
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	if !slices.Contains(report.Formats, flagFormat) {
		return fmt.Errorf("invalid --format %q (valid: table, markdown, json)", flagFormat)
	}

	raw, unit, err := resolveRaw(rt.cfg)
	if err != nil {
		return err
	}
	params, err := input.Parse(raw, input.Options{
		DensityUnit: unit,
		DensityMin:  rt.cfg.Density.Min,
		DensityMax:  rt.cfg.Density.Max,
	})
	if err != nil {
		return userError(rt, err)
	}

	seed := flagSeed
	if !cmd.Flags().Changed("seed") {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}
	rt.logger.Debug("seeded generator", "seed", seed)

	g := &compaction.Generator{
		Source:   random.NewSource(seed),
		Logger:   rt.logger,
		MaxCount: rt.cfg.MaxCount,
	}
	results, err := g.Generate(params)
	if err != nil {
		return userError(rt, err)
	}
	return report.Render(cmd.OutOrStdout(), params, results, flagFormat, rt.printer)
}

// resolveRaw merges the cylinder preset and config defaults under the
// explicit flags.
func resolveRaw(cfg *config.Config) (input.Raw, input.DensityUnit, error) {
	raw := input.Raw{
		CylinderWeight:  flagCylinderWeight,
		CylinderVolume:  flagCylinderVolume,
		MaxDryDensity:   flagMaxDryDensity,
		OptimalMoisture: flagOptimalMoisture,
		TrialType:       flagType,
		Count:           flagCount,
	}

	if flagCylinder != "" {
		cyl, ok := cfg.Cylinder(flagCylinder)
		if !ok {
			return input.Raw{}, "", fmt.Errorf("unknown cylinder %q (see 'compactsim list')", flagCylinder)
		}
		if raw.CylinderWeight == "" {
			raw.CylinderWeight = fmt.Sprint(cyl.WeightGrams)
		}
		if raw.CylinderVolume == "" {
			raw.CylinderVolume = fmt.Sprint(cyl.VolumeLiters)
		}
	}
	if raw.TrialType == "" {
		raw.TrialType = cfg.Defaults.Type
	}
	if raw.Count == "" {
		raw.Count = fmt.Sprint(cfg.Defaults.Count)
	}

	unitName := flagDensityUnit
	if unitName == "" {
		unitName = cfg.Defaults.DensityUnit
	}
	unit, err := input.ParseDensityUnit(unitName)
	if err != nil {
		return input.Raw{}, "", err
	}
	return raw, unit, nil
}

// paramError carries the localized message while keeping the original error
// reachable through errors.Is / errors.As.
type paramError struct {
	msg string
	err error
}

func (e *paramError) Error() string { return e.msg }
func (e *paramError) Unwrap() error { return e.err }

func userError(rt *runtime, err error) error {
	rt.logger.Debug("generation rejected", "error", err)
	return &paramError{msg: i18n.DescribeError(rt.printer, err), err: err}
}
