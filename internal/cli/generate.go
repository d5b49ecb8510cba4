package cli

import (
	"errors"
	"strconv"
	"time"

	"cdn-insights/internal/app"
	"cdn-insights/internal/generators"
	"cdn-insights/internal/shared/loggers"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	root      *rootOptions
	scenarios []string
	count     int
	seed      uint64
	overwrite bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{root: root}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate scenario batches ready to be posted to /api/analyze",
		Example: `  cdnlogs generate
  cdnlogs generate --scenario ddos_attack --count 500 --seed 42 --overwrite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.scenarios, "scenario", "s", nil, "Scenario names to generate (all when empty)")
	flags.IntVarP(&opts.count, "count", "n", 0, "Entries per scenario (scenario default when 0)")
	flags.Uint64Var(&opts.seed, "seed", 0, "Random seed for reproducible output (time based when unset)")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Replace scenarios that already exist")
	return cmd
}

func (o *generateOptions) run(cmd *cobra.Command) error {
	if o.count < 0 {
		return errors.New("--count must not be negative")
	}

	_, rootDir, err := o.root.settings(cmd)
	if err != nil {
		return err
	}
	ctx, err := o.root.loggerContext(cmd)
	if err != nil {
		return err
	}

	generationService, err := app.NewGenerationService(rootDir)
	if err != nil {
		return err
	}

	names := o.scenarios
	if len(names) == 0 {
		for _, s := range generators.Scenarios() {
			names = append(names, s.Name)
		}
	}

	seed := o.seed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}

	logger := loggers.Ctx(ctx)
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scenario", "Entries", "File"})

	for _, name := range names {
		result, err := generationService.Generate(ctx, generators.GenerateRequest{
			Scenario:  name,
			Count:     o.count,
			Seed:      seed,
			Overwrite: o.overwrite,
		})
		if err != nil {
			return err
		}
		logger.Debug().
			Str(loggers.FieldScenario, result.Scenario).
			Str(loggers.FieldFileKey, result.FileKey).
			Msg("scenario written")
		table.Append([]string{result.Scenario, strconv.Itoa(result.Entries), result.FileKey})
	}
	table.Render()
	return nil
}
