package breakeven

import (
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/output"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for an optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if result.Request.BaseScenario != nil {
		sb.WriteString(fmt.Sprintf("Scenario:        %s\n", result.Request.BaseScenario.Name))
	}
	sb.WriteString(fmt.Sprintf("Solve For:       %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Target Payout:   %s\n", output.FormatCurrency(result.TargetPayout)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLVED PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalContribution != nil {
		sb.WriteString(fmt.Sprintf("Monthly Contribution: %s\n", output.FormatCurrency(*result.OptimalContribution)))
	}
	if result.AnnuityEstimate != nil {
		sb.WriteString(fmt.Sprintf("Annuity Estimate:     %s\n", output.FormatCurrency(*result.AnnuityEstimate)))
	}
	if result.OptimalMonths != nil {
		sb.WriteString(fmt.Sprintf("Duration:             %d months\n", *result.OptimalMonths))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Final Balance:        %s\n", output.FormatCurrency(result.FinalBalance)))
	sb.WriteString(fmt.Sprintf("Payout/Participant:   %s\n", output.FormatCurrency(result.PayoutPerParticipant)))

	if result.BaseProjection != nil {
		sb.WriteString("\nCOMPARISON TO CURRENT PLAN\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Payout:               %s\n", tf.signed(result.PayoutDiffFromBase.StringFixed(2))))
		if result.OptimalContribution != nil {
			sb.WriteString(fmt.Sprintf("Contribution:         %s\n", tf.signed(result.ContributionDiffFromBase.StringFixed(2))))
		}
		if result.OptimalMonths != nil {
			sb.WriteString(fmt.Sprintf("Months:               %s\n", tf.signed(fmt.Sprint(result.MonthsDiffFromBase))))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	return sb.String()
}

// FormatAll formats the results of solving every target
func (tf *TableFormatter) FormatAll(md *MultiDimensionalResult) string {
	var sb strings.Builder
	for i := range md.Results {
		sb.WriteString(tf.Format(&md.Results[i]))
		sb.WriteString("\n")
	}

	if len(md.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range md.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "✗ Did not converge"
}

func (tf *TableFormatter) signed(s string) string {
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// JSONFormatter formats optimization results as an output envelope
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON for an optimization result
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	data, err := output.MarshalEnvelope(output.NewEnvelope("breakeven", result), jf.Pretty)
	if err != nil {
		return "", fmt.Errorf("failed to marshal break-even result: %w", err)
	}
	return string(data), nil
}

// FormatAll generates JSON for a multi-target result
func (jf *JSONFormatter) FormatAll(md *MultiDimensionalResult) (string, error) {
	data, err := output.MarshalEnvelope(output.NewEnvelope("breakeven", md), jf.Pretty)
	if err != nil {
		return "", fmt.Errorf("failed to marshal break-even results: %w", err)
	}
	return string(data), nil
}
