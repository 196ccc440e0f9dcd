package strategy

import (
	"fmt"
	"strings"
)

// FromConfig builds a strategy from a config name plus free-form params.
// Unknown names are a configuration error.
func FromConfig(name string, params map[string]any) (Strategy, error) {
	switch name {
	case "taxable-first", "":
		return TaxableFirst(), nil
	case "deferred-first":
		return DeferredFirst(), nil
	case "pro-rata":
		return &ProRataStrategy{}, nil
	case "ordered":
		order, err := orderFromParams(params)
		if err != nil {
			return nil, fmt.Errorf("strategy %q: %w", name, err)
		}
		return &OrderedStrategy{StrategyName: "ordered", Order: order}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

func orderFromParams(params map[string]any) ([]Bucket, error) {
	raw, ok := params["order"]
	if !ok {
		return nil, fmt.Errorf("param %q is required", "order")
	}

	var order []Bucket
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				order = append(order, Bucket(part))
			}
		}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("order entries must be strings, got %T", item)
			}
			order = append(order, Bucket(s))
		}
	default:
		return nil, fmt.Errorf("order must be a string or list, got %T", raw)
	}

	if err := validOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}
