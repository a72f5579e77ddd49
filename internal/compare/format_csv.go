package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Mode",
		"Months",
		"Monthly Contribution",
		"Final Balance",
		"Payout Per Participant",
		"Total Contributions",
		"Total Yield",
		"Auxiliary Income",
		"Target Met",
		"Payout Diff from Base",
		"Payout % Change",
		"Contribution Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		string(result.Mode),
		strconv.Itoa(result.DurationMonths),
		result.MonthlyContribution.StringFixed(2),
		result.FinalBalance.StringFixed(2),
		result.PayoutPerParticipant.StringFixed(2),
		result.TotalContributions.StringFixed(2),
		result.TotalYield.StringFixed(2),
		result.AuxiliaryIncome.StringFixed(2),
		strconv.FormatBool(result.TargetMet),
		result.PayoutDiffFromBase.StringFixed(2),
		result.PayoutPctFromBase.StringFixed(2),
		result.ContributionDiffFromBase.StringFixed(2),
	}
}
