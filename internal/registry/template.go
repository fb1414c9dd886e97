package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownOperation is returned by Lookup when no template is
	// registered under the requested kind.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrIncompleteParameters is returned by Validate when a required
	// parameter is missing or has the wrong type.
	ErrIncompleteParameters = errors.New("incomplete parameters")
)

// ParamType constrains the value bound to a template parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamDataset ParamType = "dataset" // a dataset reference or step output
	ParamRegion  ParamType = "region"  // a named place
)

type Parameter struct {
	Name        string    `yaml:"name"`
	Type        ParamType `yaml:"type"`
	Description string    `yaml:"description,omitempty"`
}

// OperationTemplate defines one supported GIS operation kind: its name and
// the parameters a step must bind before it can be executed downstream.
type OperationTemplate struct {
	Kind        string      `yaml:"kind"`
	Description string      `yaml:"description,omitempty"`
	Required    []Parameter `yaml:"required,omitempty"`
	Optional    []Parameter `yaml:"optional,omitempty"`
}

// Validate checks params against the template: every required parameter must
// be present with a compatible value type. Optional parameters are checked
// for type only when present.
func (t OperationTemplate) Validate(params map[string]any) error {
	var missing []string
	for _, p := range t.Required {
		v, ok := params[p.Name]
		if !ok || v == nil {
			missing = append(missing, p.Name)
			continue
		}
		if err := checkType(p, v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrIncompleteParameters, t.Kind, err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s requires %s", ErrIncompleteParameters, t.Kind, strings.Join(missing, ", "))
	}
	for _, p := range t.Optional {
		if v, ok := params[p.Name]; ok {
			if err := checkType(p, v); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrIncompleteParameters, t.Kind, err)
			}
		}
	}
	return nil
}

func checkType(p Parameter, v any) error {
	switch p.Type {
	case ParamNumber:
		switch v.(type) {
		case int, int64, float64:
			return nil
		}
		return fmt.Errorf("parameter %s must be a number", p.Name)
	default:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("parameter %s must be a string", p.Name)
		}
		return nil
	}
}
