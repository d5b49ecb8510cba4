package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"cdn-insights/internal/analyzers"
	"cdn-insights/internal/app"
	"cdn-insights/internal/models"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type analyzeOptions struct {
	root     *rootOptions
	scenario string
	output   string
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{root: root}

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Compute per-endpoint metrics for a batch file, stdin or a generated scenario",
		Example: `  cdnlogs analyze batch.json
  cat batch.json | cdnlogs analyze -
  cdnlogs analyze --scenario ddos_attack --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "Analyze a generated scenario from the root directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

func (o *analyzeOptions) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && o.scenario == "" {
		return errors.New("a batch file or --scenario is required")
	}
	if len(args) > 0 && o.scenario != "" {
		return errors.New("a batch file and --scenario are mutually exclusive")
	}
	if o.output != outputTable && o.output != outputJSON {
		return fmt.Errorf("unsupported output %q, expected %s or %s", o.output, outputTable, outputJSON)
	}

	analysis, rootDir, err := o.root.settings(cmd)
	if err != nil {
		return err
	}
	ctx, err := o.root.loggerContext(cmd)
	if err != nil {
		return err
	}

	analysisService := app.NewAnalysisService(analysis)

	var endpoints []models.EndpointMetric
	if o.scenario != "" {
		scenarioStore, err := app.NewScenarioStore(rootDir)
		if err != nil {
			return err
		}
		batch, err := scenarioStore.Get(ctx, o.scenario)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", o.scenario, err)
		}
		endpoints = analysisService.AnalyzeEntries(ctx, batch.Logs)
	} else {
		r, closeFn, err := openInput(cmd, args[0])
		if err != nil {
			return err
		}
		defer closeFn()

		result, err := analysisService.Analyze(ctx, analyzers.FormatJSON, r)
		if err != nil {
			return err
		}
		endpoints = result.Endpoints
	}

	if o.output == outputJSON {
		return writeEndpointsJSON(cmd.OutOrStdout(), endpoints)
	}
	writeEndpointsTable(cmd.OutOrStdout(), endpoints)
	return nil
}

func openInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeEndpointsJSON(w io.Writer, endpoints []models.EndpointMetric) error {
	if endpoints == nil {
		endpoints = []models.EndpointMetric{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(endpoints)
}

func writeEndpointsTable(w io.Writer, endpoints []models.EndpointMetric) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{
		"Endpoint", "Requests", "Hits", "Misses", "Hit %",
		"Origin p50", "Origin p95", "Origin p99",
		"Bytes avg", "Bot avg", "Threat avg", "4xx", "5xx",
	})

	for _, m := range endpoints {
		clientErrors, serverErrors := statusClassCounts(m.StatusCodeDistribution)
		table.Append([]string{
			m.EndpointURL,
			strconv.FormatInt(m.TotalRequests, 10),
			strconv.FormatInt(m.CacheHits, 10),
			strconv.FormatInt(m.CacheMisses, 10),
			formatPercent(m.CacheHits, m.TotalRequests),
			formatFloat(m.OriginResponseTimes.Median),
			formatFloat(m.OriginResponseTimes.NinetyFifthPercentile),
			formatFloat(m.OriginResponseTimes.NinetyNinthPercentile),
			formatFloat(m.ByteAmounts.Mean),
			formatFloat(m.BotScores.Mean),
			formatFloat(m.ThreatScores.Mean),
			strconv.FormatInt(clientErrors, 10),
			strconv.FormatInt(serverErrors, 10),
		})
	}
	table.Render()
}

func statusClassCounts(dist map[int]int64) (clientErrors, serverErrors int64) {
	for status, count := range dist {
		switch {
		case status >= 400 && status < 500:
			clientErrors += count
		case status >= 500 && status < 600:
			serverErrors += count
		}
	}
	return clientErrors, serverErrors
}

func formatPercent(part, total int64) string {
	if total == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(part)*100/float64(total), 'f', 1, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
