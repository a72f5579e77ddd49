package compare

import (
	"context"
	"fmt"

	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/transform"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.ProjectionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.ProjectionEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string             // Name of the base scenario to compare against
	Templates        []string           // List of template names to apply
	Scenarios        []string           // Other scenarios from the configuration
	Variants         []*domain.Scenario // Already derived scenarios, e.g. from transform specs
}

// Compare projects the base scenario against every alternative in options:
// template variants first, then named scenarios, then prebuilt variants.
// Alternatives run concurrently; results keep that order.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	baseScenario, ok := config.FindScenario(options.BaseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	total := len(options.Templates) + len(options.Scenarios) + len(options.Variants)
	if total == 0 {
		return nil, fmt.Errorf("nothing to compare against %s", baseScenario.Name)
	}
	alternatives := make([]*domain.Scenario, 0, total)
	descriptions := make([]string, 0, total)

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyToScenario(baseScenario, baseScenario.Name+"_"+template.Name, template.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		alternatives = append(alternatives, modified)
		descriptions = append(descriptions, template.Description)
	}

	for _, altName := range options.Scenarios {
		alt, ok := config.FindScenario(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}
		alternatives = append(alternatives, alt)
		descriptions = append(descriptions, alt.Description)
	}

	for _, v := range options.Variants {
		if v == nil {
			return nil, fmt.Errorf("variant cannot be nil")
		}
		alternatives = append(alternatives, v)
		descriptions = append(descriptions, v.Description)
	}

	compSet, err := ce.run(ctx, baseScenario, alternatives)
	if err != nil {
		return nil, err
	}
	for i := range compSet.AlternativeResults {
		compSet.AlternativeResults[i].Description = descriptions[i]
	}
	return compSet, nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	return ce.Compare(ctx, config, CompareOptions{
		BaseScenarioName: baseScenarioName,
		Scenarios:        alternativeScenarioNames,
	})
}

func (ce *CompareEngine) run(ctx context.Context, base *domain.Scenario, alternatives []*domain.Scenario) (*ComparisonSet, error) {
	projections := make([]*domain.Projection, len(alternatives)+1)
	scenarios := append([]*domain.Scenario{base}, alternatives...)

	g, ctx := errgroup.WithContext(ctx)
	for i, scenario := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := ce.CalcEngine.RunScenario(scenario)
			if err != nil {
				if i == 0 {
					return fmt.Errorf("failed to calculate base scenario: %w", err)
				}
				return fmt.Errorf("failed to calculate scenario %s: %w", scenario.Name, err)
			}
			projections[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(projections[0])
	baseResult.Description = base.Description

	results := make([]ComparisonResult, 0, len(alternatives))
	for i, p := range projections[1:] {
		altResult := ce.MetricsCalculator.CalculateMetrics(p)
		altResult.Description = alternatives[i].Description
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
