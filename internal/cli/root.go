package cli

import (
	"context"
	"fmt"

	"cdn-insights/internal/shared/configs"
	"cdn-insights/internal/shared/loggers"

	"github.com/spf13/cobra"
)

const defaultRootDir = "./data"

// Build information, set with -ldflags at release time.
var Version, BuildDate, GitRevision string

type rootOptions struct {
	configPath string
	rootDir    string
	logLevel   string
	logFormat  string
}

// settings resolves the analysis config and scenario root directory.
// Without --config the built-in defaults apply; --root always wins over the config file.
func (o *rootOptions) settings(cmd *cobra.Command) (configs.AnalysisConfig, string, error) {
	analysis := configs.DefaultAnalysisConfig()
	rootDir := defaultRootDir

	if o.configPath != "" {
		cfg, err := configs.LoadConfig(o.configPath)
		if err != nil {
			return analysis, "", fmt.Errorf("failed to load config: %w", err)
		}
		analysis = cfg.Analysis
		rootDir = cfg.FileStorage.RootDir
	}

	if cmd.Flags().Changed("root") {
		rootDir = o.rootDir
	}
	return analysis, rootDir, nil
}

// loggerContext attaches a stderr logger to the command context so stdout carries only results.
func (o *rootOptions) loggerContext(cmd *cobra.Command) (context.Context, error) {
	logger, err := loggers.NewWithOptions(loggers.Options{
		Level:  o.logLevel,
		Format: loggers.Format(o.logFormat),
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid log settings (level %q, format %q): %w", o.logLevel, o.logFormat, err)
	}
	logger = loggers.Component(logger, "cdnlogs", cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx), nil
}

// NewRootCmd builds the cdnlogs command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "cdnlogs",
		Short:         "Analyze CDN access log batches and generate test scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a configs.yml file (defaults apply when empty)")
	flags.StringVar(&opts.rootDir, "root", defaultRootDir, "Root directory of generated scenarios")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")
	flags.StringVar(&opts.logFormat, "log-format", string(loggers.FormatConsole), "Log format written to stderr (console or json)")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newGenerateCmd(opts),
		newScenariosCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}
