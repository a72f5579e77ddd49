package main

import (
	"context"
	"fmt"

	"github.com/caixinha/caixinha/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Find the contribution or duration that reaches the payout target",
		Long: `Solve for the smallest monthly contribution, or the fewest months, that make
the simulated payout per participant reach the target. Unlike the target mode of
simulate, the search runs the full simulation, so loan interest is accounted for.

Examples:
  caixinha solve grupo.yaml --scenario Base --target contribution
  caixinha solve grupo.yaml --target duration --payout 2500 --max-months 24
  caixinha solve grupo.yaml --target all --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}
	cmd.Flags().StringP("scenario", "s", "", "Scenario to solve (default: first in file)")
	cmd.Flags().StringP("target", "t", "contribution", "What to solve for (contribution, duration, all)")
	cmd.Flags().Float64("payout", 0, "Payout per participant to reach (default: the scenario's target)")
	cmd.Flags().Float64("max-contribution", 0, "Upper bound on the monthly contribution")
	cmd.Flags().Int("max-months", 0, "Upper bound on the duration in months")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	scenarioName, _ := cmd.Flags().GetString("scenario")
	if scenarioName == "" {
		scenarioName = cfg.Scenarios[0].Name
	}
	scenario, ok := cfg.FindScenario(scenarioName)
	if !ok {
		return fmt.Errorf("scenario %q not found", scenarioName)
	}

	targetStr, _ := cmd.Flags().GetString("target")
	target, err := breakeven.ParseTarget(targetStr)
	if err != nil {
		return err
	}

	var constraints breakeven.Constraints
	if payout, _ := cmd.Flags().GetFloat64("payout"); payout > 0 {
		v := decimal.NewFromFloat(payout)
		constraints.TargetPayout = &v
	}
	if maxContribution, _ := cmd.Flags().GetFloat64("max-contribution"); maxContribution > 0 {
		v := decimal.NewFromFloat(maxContribution)
		constraints.MaxContribution = &v
	}
	if maxMonths, _ := cmd.Flags().GetInt("max-months"); maxMonths > 0 {
		constraints.MaxMonths = &maxMonths
	}

	solver := breakeven.NewDefaultSolver(newEngine(cmd))
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()
	ctx := context.Background()

	if target == breakeven.OptimizeAll {
		md, err := solver.OptimizeAllTargets(ctx, scenario, constraints)
		if err != nil {
			return err
		}
		if format == "json" {
			s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatAll(md)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
			return nil
		}
		fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatAll(md))
		return nil
	}

	result, err := solver.Optimize(ctx, breakeven.OptimizationRequest{
		BaseScenario: scenario,
		Target:       target,
		Constraints:  constraints,
	})
	if err != nil {
		return err
	}
	if format == "json" {
		s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}
	fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
	return nil
}
