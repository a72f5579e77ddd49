package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/compare"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a scenario against templates or other scenarios",
		Long: `Compare a base scenario against variants built from templates, against other
scenarios in the same file, and against a custom variant built from transforms.
The three sources can be combined in one comparison.

Examples:
  caixinha compare grupo.yaml --base Base --with no_loans,double_raffles
  caixinha compare grupo.yaml --base Base --scenarios "Com renda extra"
  caixinha compare grupo.yaml --base Base --transform set_contribution:amount=200 --transform toggle_stream:stream=fines,enabled=true
  caixinha compare grupo.yaml --base Base --with no_loans --transform set_contribution:amount=200`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: runCompare,
	}
	cmd.Flags().String("base", "", "Base scenario name to compare against")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().String("scenarios", "", "Comma-separated list of scenarios from the file to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec for a custom variant (name:key=value,...); repeatable")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available templates and transforms")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	engine := compare.NewCompareEngine(newEngine(cmd))

	if list, _ := cmd.Flags().GetBool("list-templates"); list {
		fmt.Fprintln(out, "Templates:")
		for _, name := range engine.TemplateRegistry.List() {
			t, _ := engine.TemplateRegistry.Get(name)
			fmt.Fprintf(out, "  %-16s %s\n", t.Name, t.Description)
		}
		fmt.Fprintln(out, "\nTransforms:")
		for _, name := range transform.NewTransformRegistry().List() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	}

	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	baseName, _ := cmd.Flags().GetString("base")
	if baseName == "" {
		baseName = cfg.Scenarios[0].Name
	}
	templates := splitList(cmd, "with")
	scenarios := splitList(cmd, "scenarios")
	specs, _ := cmd.Flags().GetStringArray("transform")

	if len(templates) == 0 && len(scenarios) == 0 && len(specs) == 0 {
		return fmt.Errorf("nothing to compare: use --with, --scenarios or --transform")
	}

	options := compare.CompareOptions{
		BaseScenarioName: baseName,
		Templates:        templates,
		Scenarios:        scenarios,
	}
	if len(specs) > 0 {
		custom, err := customVariant(cfg, baseName, specs)
		if err != nil {
			return err
		}
		options.Variants = append(options.Variants, custom)
	}

	compSet, err := engine.Compare(context.Background(), cfg, options)
	if err != nil {
		return err
	}
	compSet.ConfigPath = args[0]

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
	case "compact":
		fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	default:
		return fmt.Errorf("unknown format %q (valid: table, compact, csv, json)", format)
	}
	return nil
}

func customVariant(cfg *domain.Configuration, baseName string, specs []string) (*domain.Scenario, error) {
	base, ok := cfg.FindScenario(baseName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found", baseName)
	}

	registry := transform.NewTransformRegistry()
	transforms := make([]transform.ConfigTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transform.ApplyToScenario(base, base.Name+"_custom", transforms)
}

func splitList(cmd *cobra.Command, flag string) []string {
	raw, _ := cmd.Flags().GetString(flag)
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
