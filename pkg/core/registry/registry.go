package registry

import (
	"sort"
	"time"

	"finagent/pkg/core/engine"
	"finagent/pkg/core/fincalc"
	"finagent/pkg/core/utils"
)

// =============================================================================
// CALCULATOR REGISTRY
// =============================================================================

// Result is the structured output of one tool call. Monetary fields are
// rounded to the rupee before they leave the registry.
type Result map[string]interface{}

type runner func(raw string) (Result, error)

type tool struct {
	spec engine.ToolSpec
	run  runner
}

// Registry is the fixed set of calculator tools exposed to the agent layer.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	tools map[string]tool
}

// New builds the registry with every calculator registered.
func New() *Registry {
	r := &Registry{tools: make(map[string]tool)}
	r.registerTaxTools()
	r.registerPlanningTools()
	r.registerInvestTools()
	r.registerPortfolioTools()
	return r
}

func (r *Registry) add(spec engine.ToolSpec, run runner) {
	r.tools[spec.Name] = tool{spec: spec, run: run}
}

// Specs returns every tool contract, sorted by name.
func (r *Registry) Specs() []engine.ToolSpec {
	specs := make([]engine.ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, t.spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Has reports whether a tool is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Execute decodes the argument payload leniently, runs the named calculator,
// and returns its structured result. Unknown tools are an error.
func (r *Registry) Execute(name, rawArgs string) (Result, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, engine.Errorf(engine.InvalidInput, "unknown tool %q", name)
	}
	return t.run(rawArgs)
}

// decode parses a tool-argument payload into the tool's own argument struct,
// tolerating model-mangled JSON.
func decode(raw string, out interface{}) error {
	if raw == "" {
		return nil
	}
	if err := utils.DecodeLenient(raw, out); err != nil {
		return engine.Errorf(engine.InvalidInput, "cannot parse tool arguments: %v", err)
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, engine.Errorf(engine.InvalidInput, "%s must be YYYY-MM-DD, got %q", field, value)
	}
	return d, nil
}

// rupees rounds a monetary value for the outgoing result map.
func rupees(v float64) float64 { return fincalc.RoundRupee(v) }

// pct rounds a percentage to two decimals for the outgoing result map.
func pct(v float64) float64 { return fincalc.Round2(v) }
