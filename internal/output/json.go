package output

import (
	"encoding/json"
	"time"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/google/uuid"
)

// Envelope wraps every JSON report with an identifier and a timestamp
type Envelope struct {
	ReportID    string    `json:"report_id"`
	Kind        string    `json:"kind"`
	GeneratedAt time.Time `json:"generated_at"`
	Data        any       `json:"data"`
}

var now = time.Now

// NewEnvelope stamps data with a fresh report ID
func NewEnvelope(kind string, data any) Envelope {
	return Envelope{
		ReportID:    uuid.NewString(),
		Kind:        kind,
		GeneratedAt: now().UTC(),
		Data:        data,
	}
}

// MarshalEnvelope encodes an envelope, indented when pretty is set
func MarshalEnvelope(env Envelope, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(env, "", "  ")
	}
	return json.Marshal(env)
}

// JSONFormatter emits the projection set inside a report envelope
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	return MarshalEnvelope(NewEnvelope("projection", set), j.Pretty)
}
