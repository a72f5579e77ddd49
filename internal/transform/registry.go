package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ConfigTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_mode", createSetMode)
	registry.Register("set_contribution", createSetContribution)
	registry.Register("set_target", createSetTarget)
	registry.Register("set_yield", createSetYield)
	registry.Register("adjust_yield", createAdjustYield)
	registry.Register("set_duration", createSetDuration)
	registry.Register("extend_duration", createExtendDuration)
	registry.Register("set_participants", createSetParticipants)

	// Auxiliary income
	registry.Register("toggle_stream", createToggleStream)
	registry.Register("scale_raffles", createScaleRaffles)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ConfigTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "toggle_stream:stream=loans,enabled=false"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ConfigTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(params map[string]string, transform, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	s, err := requireParam(params, transform, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func intParam(params map[string]string, transform, key string) (int, error) {
	s, err := requireParam(params, transform, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// Factory functions for each transform

func createSetMode(params map[string]string) (ConfigTransform, error) {
	s, err := requireParam(params, "set_mode", "mode")
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseMode(s)
	if err != nil {
		return nil, err
	}
	return &SetMode{Mode: mode}, nil
}

func createSetContribution(params map[string]string) (ConfigTransform, error) {
	amount, err := decimalParam(params, "set_contribution", "amount")
	if err != nil {
		return nil, err
	}
	return &SetContribution{Amount: amount}, nil
}

func createSetTarget(params map[string]string) (ConfigTransform, error) {
	amount, err := decimalParam(params, "set_target", "amount")
	if err != nil {
		return nil, err
	}
	return &SetTarget{Amount: amount}, nil
}

func createSetYield(params map[string]string) (ConfigTransform, error) {
	rate, err := decimalParam(params, "set_yield", "rate")
	if err != nil {
		return nil, err
	}
	return &SetYield{Rate: rate}, nil
}

func createAdjustYield(params map[string]string) (ConfigTransform, error) {
	delta, err := decimalParam(params, "adjust_yield", "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustYield{Delta: delta}, nil
}

func createSetDuration(params map[string]string) (ConfigTransform, error) {
	months, err := intParam(params, "set_duration", "months")
	if err != nil {
		return nil, err
	}
	return &SetDuration{Months: months}, nil
}

func createExtendDuration(params map[string]string) (ConfigTransform, error) {
	months, err := intParam(params, "extend_duration", "months")
	if err != nil {
		return nil, err
	}
	return &ExtendDuration{Months: months}, nil
}

func createSetParticipants(params map[string]string) (ConfigTransform, error) {
	count, err := intParam(params, "set_participants", "count")
	if err != nil {
		return nil, err
	}
	return &SetParticipants{Count: count}, nil
}

func createToggleStream(params map[string]string) (ConfigTransform, error) {
	stream, err := requireParam(params, "toggle_stream", "stream")
	if err != nil {
		return nil, err
	}

	enabled := false
	if enabledStr, ok := params["enabled"]; ok {
		enabled, err = strconv.ParseBool(enabledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value: %w", err)
		}
	}

	return &ToggleStream{Stream: strings.ToLower(stream), Enabled: enabled}, nil
}

func createScaleRaffles(params map[string]string) (ConfigTransform, error) {
	factor, err := decimalParam(params, "scale_raffles", "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleRaffles{Factor: factor}, nil
}
