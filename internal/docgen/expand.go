package docgen

import (
	"fmt"

	"github.com/vvakame/gqldocgen/internal/registry"
)

// recursionCounts records how many times each type was entered along the
// current path. It is never modified in place; see enter.
type recursionCounts map[string]int

func (counts recursionCounts) enter(typeName string) recursionCounts {
	next := make(recursionCounts, len(counts)+1)
	for k, v := range counts {
		next[k] = v
	}
	next[typeName]++
	return next
}

type expander struct {
	registry       *registry.Registry
	recursionLimit int
}

// expandRoot expands a root operation field with an empty path.
func (e *expander) expandRoot(field *registry.FieldDef) (*Selection, []*OperationInput, error) {
	return e.expandField(field, recursionCounts{}, nil)
}

// expandField returns nil when the field is pruned, either because its type
// went over the recursion limit or because nothing below it survived.
func (e *expander) expandField(field *registry.FieldDef, counts recursionCounts, path []string) (*Selection, []*OperationInput, error) {
	if field.TargetType != "" {
		if counts[field.TargetType] > e.recursionLimit {
			return nil, nil, nil
		}
		counts = counts.enter(field.TargetType)
	}

	fieldPath := appendPath(path, field.Name)

	selection := &Selection{Name: field.Name}
	inputs := make([]*OperationInput, 0, len(field.Arguments))
	for _, arg := range field.Arguments {
		desc, err := registry.ResolveType(arg.Type, e.registry.Scalars)
		if err != nil {
			return nil, nil, fmt.Errorf("argument %s of field %s: %w", arg.Name, field.Name, err)
		}
		argPath := appendPath(fieldPath, arg.Name)
		selection.Arguments = append(selection.Arguments, &ArgumentBinding{
			Name:     arg.Name,
			Variable: VariableName(argPath),
		})
		inputs = append(inputs, &OperationInput{
			Path: argPath,
			Type: desc,
		})
	}

	typeDef := e.registry.Type(field.TargetType)
	if typeDef == nil {
		return selection, inputs, nil
	}

	selection.Selections = make([]*Selection, 0, len(typeDef.Fields))
	for _, subField := range typeDef.Fields {
		child, childInputs, err := e.expandField(subField, counts, fieldPath)
		if err != nil {
			return nil, nil, err
		}
		if child == nil {
			continue
		}
		selection.Selections = append(selection.Selections, child)
		inputs = append(inputs, childInputs...)
	}
	if len(selection.Selections) == 0 {
		return nil, nil, nil
	}

	return selection, inputs, nil
}
