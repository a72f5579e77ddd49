package compare

import (
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("CAIXINHA SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Contribution",
		numWidth, "Final Balance",
		numWidth, "Payout",
		numWidth, "Extra Income"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Payout:           %s%s (%s%%)\n",
				tf.deltaSymbol(alt.PayoutDiffFromBase),
				output.FormatCurrency(alt.PayoutDiffFromBase.Abs()),
				alt.PayoutPctFromBase.StringFixed(1)))

			if !alt.ContributionDiffFromBase.IsZero() {
				// Paying less each month is the better direction
				sb.WriteString(fmt.Sprintf("  Contribution:     %s%s/month\n",
					tf.deltaSymbol(alt.ContributionDiffFromBase),
					output.FormatCurrency(alt.ContributionDiffFromBase.Abs())))
			}

			if !alt.AuxiliaryDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Extra Income:     %s%s\n",
					tf.deltaSymbol(alt.AuxiliaryDiffFromBase),
					output.FormatCurrency(alt.AuxiliaryDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	payout := tf.formatDecimal(result.PayoutPerParticipant)
	if !result.TargetMet {
		payout += "*"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.MonthlyContribution),
		numWidth, tf.formatDecimal(result.FinalBalance),
		numWidth, payout,
		numWidth, tf.formatDecimal(result.AuxiliaryIncome))
}

// formatDecimal formats a decimal for display, abbreviating thousands
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(2)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.PayoutDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.PayoutDiffFromBase) + tf.formatDecimal(alt.PayoutDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
