package engine

// =============================================================================
// TOOL CONTRACTS
// =============================================================================

// ParamType is the JSON-facing type of a tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamInteger ParamType = "integer"
	ParamBoolean ParamType = "boolean"
	ParamArray   ParamType = "array"
	ParamObject  ParamType = "object"
)

// ParamSpec declares one argument of a calculator tool. The declaration is
// what the agent layer exposes to the model; the calculator re-validates on
// its own terms regardless.
type ParamSpec struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description"`
	Required    bool      `json:"required,omitempty"`
	Enum        []string  `json:"enum,omitempty"` // closed set of accepted values, if any
}

// ToolSpec is the declared contract of one calculator.
type ToolSpec struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`
}

// Param looks up a declared parameter by name.
func (t ToolSpec) Param(name string) (ParamSpec, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}
