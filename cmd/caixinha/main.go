package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/config"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/logging"
	"github.com/caixinha/caixinha/internal/output"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newRootCmd builds the command tree. Tests build a fresh tree per case so
// that flag values never leak between runs.
func newRootCmd() *cobra.Command {
	env := config.LoadEnv()

	root := &cobra.Command{
		Use:   "caixinha",
		Short: "Caixinha savings projection CLI",
		Long: "Projects the balance of a collective savings group (caixinha) month by month,\n" +
			"solves the contribution needed for a payout target and compares scenarios.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.ParseLevel(env.LogLevel)
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				level = slog.LevelDebug
			}
			logging.SetupWithLevel(level)
		},
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug output for month-by-month calculations")

	root.AddCommand(simulateCmd(env))
	root.AddCommand(validateCmd())
	root.AddCommand(exampleCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(solveCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "caixinha %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// newEngine wires the engine to the default slog logger
func newEngine(cmd *cobra.Command) *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	engine.SetLogger(logging.NewEngineLogger(slog.Default()))
	engine.Debug, _ = cmd.Flags().GetBool("debug")
	return engine
}

func loadConfig(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("configuration loaded", "file", path, "scenarios", len(cfg.Scenarios))
	return cfg, nil
}

// selectScenarios narrows a configuration to the named scenario, if any
func selectScenarios(cfg *domain.Configuration, name string) (*domain.Configuration, error) {
	if name == "" {
		return cfg, nil
	}
	sc, ok := cfg.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("scenario %q not found", name)
	}
	return &domain.Configuration{Group: cfg.Group, Scenarios: []domain.Scenario{*sc}}, nil
}

func reportExtension(format string) string {
	switch format {
	case "csv", "csv-summary":
		return "csv"
	case "json":
		return "json"
	case "html":
		return "html"
	default:
		return "txt"
	}
}

func simulateCmd(env config.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [input-file]",
		Short: "Project every scenario of a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}

			scenarioName, _ := cmd.Flags().GetString("scenario")
			if cfg, err = selectScenarios(cfg, scenarioName); err != nil {
				return err
			}
			if cfg.Group.Locale == "" {
				cfg.Group.Locale = env.Locale
			}

			format, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(output.FormatterNames(), ", "))
			}

			set, err := newEngine(cmd).RunScenarios(cfg)
			if err != nil {
				return err
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(formatter, set, reportExtension(format))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := formatter.Format(set)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", env.DefaultFormat, "Output format ("+strings.Join(output.FormatterNames(), ", ")+")")
	cmd.Flags().StringP("scenario", "s", "", "Only project the named scenario")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d scenarios)\n", args[0], len(cfg.Scenarios))
			return nil
		},
	}
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			if err := config.SaveConfiguration(config.CreateExampleConfiguration(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", args[0])
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
