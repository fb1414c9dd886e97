package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Registry holds the set of supported operation templates. It is populated
// once at startup and read-only afterwards, so concurrent lookups from
// request handlers need no locking.
type Registry struct {
	templates map[string]OperationTemplate
}

// New returns a registry pre-loaded with the builtin operation catalog.
func New() *Registry {
	r := &Registry{templates: make(map[string]OperationTemplate)}
	for _, t := range builtinCatalog {
		r.templates[t.Kind] = t
	}
	return r
}

func (r *Registry) Register(t OperationTemplate) error {
	if t.Kind == "" {
		return fmt.Errorf("operation template has no kind")
	}
	r.templates[t.Kind] = t
	return nil
}

// Lookup returns the template registered under kind.
func (r *Registry) Lookup(kind string) (OperationTemplate, error) {
	t, ok := r.templates[kind]
	if !ok {
		return OperationTemplate{}, fmt.Errorf("%w: %s", ErrUnknownOperation, kind)
	}
	return t, nil
}

// Kinds lists all registered operation kinds in stable order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.templates))
	for k := range r.templates {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

type catalogFile struct {
	Operations []OperationTemplate `yaml:"operations"`
}

// LoadCatalog merges extra operation templates from a YAML file into the
// registry. Entries with a kind already registered replace the builtin.
func (r *Registry) LoadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read operation catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse operation catalog: %w", err)
	}
	for _, t := range cf.Operations {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}
