package transform

import (
	"sort"
	"strings"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ConfigTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common what-if variants
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Auxiliary income
	registry.Register(Template{
		Name:        "no_raffles",
		Description: "Stop holding raffles",
		Transforms:  []ConfigTransform{&ToggleStream{Stream: StreamRaffles}},
	})
	registry.Register(Template{
		Name:        "no_loans",
		Description: "Stop lending from the pooled balance",
		Transforms:  []ConfigTransform{&ToggleStream{Stream: StreamLoans}},
	})
	registry.Register(Template{
		Name:        "no_fines",
		Description: "Waive late-payment fines",
		Transforms:  []ConfigTransform{&ToggleStream{Stream: StreamFines}},
	})
	registry.Register(Template{
		Name:        "no_auxiliary",
		Description: "Contributions and yield only",
		Transforms:  []ConfigTransform{&ToggleStream{Stream: StreamAll}},
	})
	registry.Register(Template{
		Name:        "double_raffles",
		Description: "Hold twice as many raffles each month",
		Transforms:  []ConfigTransform{&ScaleRaffles{Factor: decimal.NewFromInt(2)}},
	})

	// Horizon
	registry.Register(Template{
		Name:        "extend_6mo",
		Description: "Run the caixinha 6 months longer",
		Transforms:  []ConfigTransform{&ExtendDuration{Months: 6}},
	})
	registry.Register(Template{
		Name:        "shorten_6mo",
		Description: "Close the caixinha 6 months earlier",
		Transforms:  []ConfigTransform{&ExtendDuration{Months: -6}},
	})

	// Yield
	registry.Register(Template{
		Name:        "higher_yield",
		Description: "Monthly yield 0.25 pp higher",
		Transforms:  []ConfigTransform{&AdjustYield{Delta: decimal.RequireFromString("0.25")}},
	})
	registry.Register(Template{
		Name:        "lower_yield",
		Description: "Monthly yield 0.25 pp lower",
		Transforms:  []ConfigTransform{&AdjustYield{Delta: decimal.RequireFromString("-0.25")}},
	})

	registry.Register(Template{
		Name:        "target_mode",
		Description: "Solve the contribution for the configured target payout",
		Transforms:  []ConfigTransform{&SetMode{Mode: domain.ModeTargetDriven}},
	})

	return registry
}
