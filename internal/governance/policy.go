package governance

import (
	"context"
	"fmt"
	"regexp"
)

// Effect defines the result of a policy evaluation.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Request contains the context of a workflow step to be evaluated before
// execution.
type Request struct {
	Operation string
	Inputs    []string
	QueryID   string
}

// Result contains the outcome of a policy evaluation.
type Result struct {
	Effect Effect
	Reason string
}

// PolicyEngine evaluates workflow steps against a set of rules.
type PolicyEngine interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
}

// DefaultPolicyEngine is a basic implementation of PolicyEngine: a deny list
// of operation kinds plus regex deny rules over dataset references. Useful to
// switch off whole engine families (raster ops, remote data sources) per
// deployment.
type DefaultPolicyEngine struct {
	DeniedOperations map[string]bool
	DeniedRegex      []*regexp.Regexp
}

func NewDefaultPolicyEngine() *DefaultPolicyEngine {
	return &DefaultPolicyEngine{
		DeniedOperations: make(map[string]bool),
		DeniedRegex:      make([]*regexp.Regexp, 0),
	}
}

func (e *DefaultPolicyEngine) DenyOperation(kind string) {
	e.DeniedOperations[kind] = true
}

// DenyDatasets blocks steps whose input references match the pattern.
func (e *DefaultPolicyEngine) DenyDatasets(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	e.DeniedRegex = append(e.DeniedRegex, re)
	return nil
}

func (e *DefaultPolicyEngine) Evaluate(ctx context.Context, req Request) (Result, error) {
	if e.DeniedOperations[req.Operation] {
		return Result{
			Effect: EffectDeny,
			Reason: fmt.Sprintf("operation %s is denied by policy", req.Operation),
		}, nil
	}

	for _, re := range e.DeniedRegex {
		for _, in := range req.Inputs {
			if re.MatchString(in) {
				return Result{
					Effect: EffectDeny,
					Reason: fmt.Sprintf("dataset %s matches denied pattern %s", in, re.String()),
				}, nil
			}
		}
	}

	return Result{Effect: EffectAllow}, nil
}
