package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caixinha/caixinha/internal/domain"
)

// Formatter renders a set of projections into a report
type Formatter interface {
	Name() string
	Format(set *domain.ProjectionSet) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(set *domain.ProjectionSet) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(set *domain.ProjectionSet) ([]byte, error) {
	return f.F(set)
}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "console", "":
		return ConsoleFormatter{}
	case "monthly", "console-monthly":
		return ConsoleFormatter{Monthly: true}
	case "csv":
		return CSVFormatter{}
	case "csv-summary":
		return CSVSummarizer{}
	case "json":
		return JSONFormatter{Pretty: true}
	case "html":
		return HTMLFormatter{}
	default:
		return nil
	}
}

// FormatterNames lists the names accepted by GetFormatterByName
func FormatterNames() []string {
	return []string{"console", "monthly", "csv", "csv-summary", "json", "html"}
}

// WriteFormatted renders set and writes it to caixinha_report_<timestamp>.<ext>
// in the working directory, returning the file name
func WriteFormatted(f Formatter, set *domain.ProjectionSet, ext string) (string, error) {
	data, err := f.Format(set)
	if err != nil {
		return "", fmt.Errorf("%s formatter: %w", f.Name(), err)
	}

	filename := fmt.Sprintf("caixinha_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

func moneyForSet(set *domain.ProjectionSet) *Money {
	if set == nil {
		return defaultMoney
	}
	return MoneyFor(set.Group.Locale, set.Group.Currency)
}
