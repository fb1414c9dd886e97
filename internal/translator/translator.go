package translator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rahul/geoflow/internal/backend"
	"github.com/rahul/geoflow/internal/observability"
	"github.com/rahul/geoflow/internal/registry"
	"github.com/rahul/geoflow/internal/workflow"
)

// ErrUnresolvedIntent is returned when a query cannot be mapped onto any
// registered operation set. It is always surfaced; the translator never
// degrades into emitting a best-guess workflow.
var ErrUnresolvedIntent = errors.New("unresolved intent")

// Translator maps a natural-language query to an executable workflow. It is
// stateless: independent queries can be translated concurrently from any
// number of goroutines.
//
// Operation selection is fully deterministic (rule extraction against the
// registry). The backend, when configured, only canonicalizes extracted
// entity values; it can never introduce an operation or a parameter the
// rules did not detect, so success/failure classification is stable across
// backends.
type Translator struct {
	registry *registry.Registry
	backend  backend.Backend // nil means pure rule mode
	prompts  *PromptManager
	logger   *observability.Logger
}

func New(reg *registry.Registry, be backend.Backend, prompts *PromptManager, logger *observability.Logger) *Translator {
	return &Translator{
		registry: reg,
		backend:  be,
		prompts:  prompts,
		logger:   logger,
	}
}

// Translate produces a workflow for q or fails with one of
// ErrUnresolvedIntent, registry.ErrIncompleteParameters,
// registry.ErrUnknownOperation, backend.ErrBackend, backend.ErrBackendTimeout.
func (t *Translator) Translate(ctx context.Context, q workflow.Query) (*workflow.Workflow, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty query", ErrUnresolvedIntent)
	}

	if t.logger != nil {
		t.logger.LogTranslate(q.ID, text)
	}

	ex := Extract(text)
	if t.logger != nil {
		t.logger.LogExtraction(q.ID, ex)
	}

	if t.backend != nil && ex.Location != "" {
		canonical, err := t.canonicalizeLocation(ctx, q.ID, ex.Location)
		if err != nil {
			return nil, err
		}
		ex.Location = canonical
	}

	chosen, err := t.selectIntent(ex)
	if err != nil {
		return nil, err
	}

	wf := workflow.New(q.ID)
	if err := chosen.build(wf); err != nil {
		return nil, err
	}

	// Every emitted step must reference a registered operation with its
	// required parameters bound.
	for _, step := range wf.Steps {
		tmpl, err := t.registry.Lookup(step.Operation)
		if err != nil {
			return nil, err
		}
		if err := tmpl.Validate(step.Params); err != nil {
			return nil, err
		}
	}

	if t.logger != nil {
		ops := make([]string, len(wf.Steps))
		for i, s := range wf.Steps {
			ops[i] = s.Operation
		}
		t.logger.LogWorkflow(q.ID, len(wf.Steps), ops)
	}

	return wf, nil
}

// selectIntent picks the most specific matching intent. A tie between two
// different intents at the top specificity is ambiguity, which is a failure,
// not a coin flip.
func (t *Translator) selectIntent(ex Extraction) (candidate, error) {
	cands := t.candidates(ex)
	if len(cands) == 0 {
		return candidate{}, fmt.Errorf("%w: no registered operation matches the query", ErrUnresolvedIntent)
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].specificity > cands[j].specificity
	})

	if len(cands) > 1 && cands[1].specificity == cands[0].specificity {
		return candidate{}, fmt.Errorf("%w: query is ambiguous between %s and %s",
			ErrUnresolvedIntent, cands[0].name, cands[1].name)
	}

	return cands[0], nil
}

var canonicalLocationRe = regexp.MustCompile(`^[A-Za-z][A-Za-z .\-]{0,62}$`)

// canonicalizeLocation asks the backend for the canonical form of a place
// name. Responses that do not look like a plain place name are discarded in
// favor of the extracted value, keeping the output independent of backend
// phrasing quirks.
func (t *Translator) canonicalizeLocation(ctx context.Context, queryID, location string) (string, error) {
	prompt := fmt.Sprintf(t.prompts.CanonicalizePrompt(), location)

	resp, err := t.backend.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if t.logger != nil {
		t.logger.LogBackend(queryID, t.backend.ModelID(), prompt, resp)
	}

	name := strings.TrimSpace(resp)
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.Trim(name, `"'.`)

	if name == "" || !canonicalLocationRe.MatchString(name) {
		return location, nil
	}
	return name, nil
}
