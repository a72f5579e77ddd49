package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with one section per scenario
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

func (h HTMLFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	money := moneyForSet(set)
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"curr":  money.Currency,
		"num":   money.Number,
		"pct":   money.Percent,
		"share": share,
		"bar":   barWidth,
	}).Parse(htmlTemplateSource)
	if err != nil {
		return nil, err
	}

	data := struct {
		*domain.ProjectionSet
		GeneratedAt string
	}{set, now().Format("2006-01-02 15:04")}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// barWidth scales a balance against the final balance for the inline chart
func barWidth(balance, final decimal.Decimal) string {
	if !final.IsPositive() {
		return "0"
	}
	return balance.Div(final).Mul(decimal.NewFromInt(100)).StringFixed(1)
}
