package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSet(t *testing.T) *domain.ProjectionSet {
	t.Helper()

	base := domain.SimulationConfig{
		ParticipantCount:           10,
		DurationMonths:             12,
		MonthlyContribution:        decimal.NewFromInt(150),
		MonthlyYieldRate:           decimal.RequireFromString("0.5"),
		TargetPayoutPerParticipant: decimal.NewFromInt(2000),
		Mode:                       domain.ModeContributionDriven,
	}
	goal := base
	goal.Mode = domain.ModeTargetDriven
	goal.AuxiliaryIncome.Raffles = domain.RaffleStream{Enabled: true, RafflesPerMonth: 1, TicketPrice: decimal.NewFromInt(10), TicketsPerMember: 2}

	set, err := calculation.NewProjectionEngine().RunScenarios(&domain.Configuration{
		Group: domain.GroupInfo{Name: "Caixinha da Rua", Currency: "BRL", Locale: "pt-BR"},
		Scenarios: []domain.Scenario{
			{Name: "Base", Simulation: base},
			{Name: "Meta", Simulation: goal},
		},
	})
	require.NoError(t, err)
	return set
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.859,00", FormatCurrency(decimal.NewFromInt(1859)))
	assert.Equal(t, "R$ 0,50", FormatCurrency(decimal.RequireFromString("0.5")))
	assert.Equal(t, "0,50%", FormatPercentage(decimal.RequireFromString("0.5")))
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney("", "")
	require.NoError(t, err)
	assert.Equal(t, "18.595,86", m.Number(decimal.RequireFromString("18595.86027")))

	_, err = NewMoney("pt-BR", "REAIS")
	assert.Error(t, err)
	_, err = NewMoney("???", "BRL")
	assert.Error(t, err)

	assert.Equal(t, defaultMoney, MoneyFor("pt-BR", "REAIS"))
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range FormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	assert.Equal(t, "console", GetFormatterByName("").Name())
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.ProjectionSet
	f := FormatterFunc{ID: "test", F: func(set *domain.ProjectionSet) ([]byte, error) {
		received = set
		return []byte("ok"), nil
	}}

	set := &domain.ProjectionSet{}
	out, err := f.Format(set)
	require.NoError(t, err)
	assert.Equal(t, "test", f.Name())
	assert.Equal(t, []byte("ok"), out)
	assert.Same(t, set, received)
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	f := FormatterFunc{ID: "test", F: func(*domain.ProjectionSet) ([]byte, error) {
		return []byte("report body"), nil
	}}
	filename, err := WriteFormatted(f, &domain.ProjectionSet{}, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "caixinha_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "report body", string(content))

	failing := FormatterFunc{ID: "broken", F: func(*domain.ProjectionSet) ([]byte, error) {
		return nil, fmt.Errorf("formatter error")
	}}
	filename, err = WriteFormatted(failing, &domain.ProjectionSet{}, "txt")
	assert.Empty(t, filename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestConsoleFormatter(t *testing.T) {
	set := buildTestSet(t)

	out, err := ConsoleFormatter{}.Format(set)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "CAIXINHA PROJECTION - Caixinha da Rua")
	assert.Contains(t, content, "SCENARIO 1: Base")
	assert.Contains(t, content, "R$ 18.595,86")
	assert.Contains(t, content, "R$ 1.859,00")
	assert.Contains(t, content, "missed by R$ 141,00")
	assert.Contains(t, content, "(solved)")
	assert.Contains(t, content, "Raffles")
	assert.NotContains(t, content, "Month ")

	monthly, err := ConsoleFormatter{Monthly: true}.Format(set)
	require.NoError(t, err)
	assert.Contains(t, string(monthly), "Loan interest")

	_, err = ConsoleFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestCSVFormatter(t *testing.T) {
	set := buildTestSet(t)

	out, err := CSVFormatter{}.Format(set)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+12+12)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"Base", "12", "18595.86"}, records[12][:3])
	assert.Equal(t, "Meta", records[13][0])
}

func TestCSVSummarizer(t *testing.T) {
	set := buildTestSet(t)

	out, err := CSVSummarizer{}.Format(set)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "contribution_driven", records[1][1])
	assert.Equal(t, "1859.00", records[1][7])
	assert.Equal(t, "false", records[1][9])
	assert.Equal(t, "-141.00", records[1][10])
	assert.Equal(t, "target_driven", records[2][1])
	assert.Equal(t, "true", records[2][9])
}

func TestJSONFormatter(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	set := buildTestSet(t)
	out, err := JSONFormatter{}.Format(set)
	require.NoError(t, err)

	var decoded struct {
		ReportID    string    `json:"report_id"`
		Kind        string    `json:"kind"`
		GeneratedAt time.Time `json:"generated_at"`
		Data        struct {
			Projections []struct {
				Name   string `json:"name"`
				Result struct {
					PayoutPerParticipant string `json:"payoutPerParticipant"`
				} `json:"result"`
			} `json:"projections"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Len(t, decoded.ReportID, 36)
	assert.Equal(t, "projection", decoded.Kind)
	assert.True(t, fixed.Equal(decoded.GeneratedAt))
	require.Len(t, decoded.Data.Projections, 2)
	assert.Equal(t, "1859", decoded.Data.Projections[0].Result.PayoutPerParticipant)

	other := NewEnvelope("projection", nil)
	assert.NotEqual(t, decoded.ReportID, other.ReportID)
}

func TestHTMLFormatter(t *testing.T) {
	set := buildTestSet(t)

	out, err := HTMLFormatter{}.Format(set)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<h1>Caixinha da Rua</h1>")
	assert.Contains(t, content, "<h2>Base</h2>")
	assert.Contains(t, content, "R$ 18.595,86")
	assert.Contains(t, content, "Monthly contribution (solved)")
	assert.Equal(t, 2, strings.Count(content, `class="scenario"`))
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, "50.0", barWidth(decimal.NewFromInt(50), decimal.NewFromInt(100)))
	assert.Equal(t, "0", barWidth(decimal.NewFromInt(50), decimal.Zero))
}
