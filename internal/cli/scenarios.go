package cli

import (
	"slices"
	"strconv"

	"cdn-insights/internal/app"
	"cdn-insights/internal/generators"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newScenariosCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the built-in scenarios and whether they have been generated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rootDir, err := root.settings(cmd)
			if err != nil {
				return err
			}
			ctx, err := root.loggerContext(cmd)
			if err != nil {
				return err
			}

			scenarioStore, err := app.NewScenarioStore(rootDir)
			if err != nil {
				return err
			}
			stored, err := scenarioStore.List(ctx)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetAutoFormatHeaders(false)
			table.SetHeader([]string{"Scenario", "Default count", "Generated", "Description"})
			for _, s := range generators.Scenarios() {
				table.Append([]string{
					s.Name,
					strconv.Itoa(s.DefaultCount),
					strconv.FormatBool(slices.Contains(stored, s.Name)),
					s.Description,
				})
			}
			table.Render()
			return nil
		},
	}
}
