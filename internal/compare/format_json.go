package compare

import (
	"github.com/caixinha/caixinha/internal/output"
)

// JSONFormatter formats comparison results as JSON inside a report envelope
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	data, err := output.MarshalEnvelope(output.NewEnvelope("comparison", compSet), jf.Pretty)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
