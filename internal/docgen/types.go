package docgen

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/gqldocgen/internal/registry"
)

// Operation is one generated operation definition.
type Operation struct {
	Kind      ast.Operation
	Name      string
	Variables []*VariableDefinition
	Selection *Selection
}

type VariableDefinition struct {
	Name string
	Type registry.TypeDescriptor
}

// Selection is a field in a generated selection set.
// Selections is nil for leaf fields.
type Selection struct {
	Name       string
	Arguments  []*ArgumentBinding
	Selections []*Selection
}

// ArgumentBinding binds a field argument to an operation variable.
type ArgumentBinding struct {
	Name     string
	Variable string
}

// OperationInput is an argument collected during expansion.
type OperationInput struct {
	Path []string
	Type registry.TypeDescriptor
}

func (input *OperationInput) VariableName() string {
	return VariableName(input.Path)
}
