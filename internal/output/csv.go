package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/caixinha/caixinha/internal/domain"
)

// CSVFormatter writes one row per scenario and month
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Month", "Balance", "CumulativeContributions", "CumulativeRaffleIncome",
		"CumulativeFineIncome", "CumulativeLoanInterest", "LoanInterestThisMonth", "YieldThisMonth",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range set.Projections {
		for _, s := range p.Snapshots {
			row := []string{
				p.Name,
				strconv.Itoa(s.Month),
				s.Balance.StringFixed(2),
				s.CumulativeContributions.StringFixed(2),
				s.CumulativeRaffleIncome.StringFixed(2),
				s.CumulativeFineIncome.StringFixed(2),
				s.CumulativeLoanInterest.StringFixed(2),
				s.LoanInterestThisMonth.StringFixed(2),
				s.YieldThisMonth.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv-summary" }

func (c CSVSummarizer) Format(set *domain.ProjectionSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Mode", "Participants", "Months", "MonthlyContribution", "MonthlyYieldRate",
		"FinalBalance", "PayoutPerParticipant", "TargetPayout", "TargetMet", "Shortfall",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range set.Projections {
		row := []string{
			p.Name,
			string(p.Config.Mode),
			strconv.Itoa(p.Config.ParticipantCount),
			strconv.Itoa(p.Config.DurationMonths),
			p.Config.MonthlyContribution.StringFixed(2),
			p.Config.MonthlyYieldRate.String(),
			p.Result.FinalBalance.StringFixed(2),
			p.Result.PayoutPerParticipant.StringFixed(2),
			p.RequestedTarget.StringFixed(2),
			strconv.FormatBool(p.Result.TargetMet),
			p.Result.Shortfall.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
