package registry

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// ArgumentDef is an argument declared on a field.
type ArgumentDef struct {
	Name string
	Type *ast.Type
}

// FieldDef is a field of an expandable type.
// TargetType is empty iff the field resolves to a scalar.
type FieldDef struct {
	Name       string
	TargetType string
	Arguments  []*ArgumentDef
}

// TypeDef is an object or interface type with its ordered fields.
type TypeDef struct {
	Name       string
	Kind       ast.DefinitionKind
	Fields     []*FieldDef
	Interfaces []string
	Position   *ast.Position
}

// Field returns the field named name, or nil.
func (def *TypeDef) Field(name string) *FieldDef {
	for _, field := range def.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Registry is the type graph used for one generation run.
// It is built by Build and never mutated afterwards.
type Registry struct {
	Types     map[string]*TypeDef
	TypeOrder []string

	// InterfaceFields maps an interface name to the names of its fields.
	InterfaceFields map[string][]string
	// Implementations maps an object type name to the interfaces it claims.
	Implementations     map[string][]string
	ImplementationOrder []string

	Roots   map[ast.Operation]string
	Scalars ScalarSet
}

// Type returns the expandable type named name, or nil.
func (r *Registry) Type(name string) *TypeDef {
	if name == "" {
		return nil
	}
	return r.Types[name]
}

// RootType returns the root type for the operation kind, or nil when the
// schema doesn't define one.
func (r *Registry) RootType(operation ast.Operation) *TypeDef {
	return r.Type(r.Roots[operation])
}

// Build collects object and interface definitions of schemaDoc.
// Extensions are merged into their base definitions.
func Build(schemaDoc *ast.SchemaDocument, scalars ScalarSet) (*Registry, error) {
	if scalars == nil {
		scalars = make(ScalarSet)
	}
	r := &Registry{
		Types:           make(map[string]*TypeDef),
		InterfaceFields: make(map[string][]string),
		Implementations: make(map[string][]string),
		Roots: map[ast.Operation]string{
			ast.Query:        "Query",
			ast.Mutation:     "Mutation",
			ast.Subscription: "Subscription",
		},
		Scalars: scalars,
	}
	if schemaDoc == nil {
		return r, nil
	}

	merged := mergeDefinitions(schemaDoc)

	for _, def := range merged {
		switch def.Kind {
		case ast.Object:
			if len(def.Fields) == 0 {
				continue
			}
			typeDef, err := r.buildTypeDef(def)
			if err != nil {
				return nil, err
			}
			r.Types[def.Name] = typeDef
			r.TypeOrder = append(r.TypeOrder, def.Name)
			if len(def.Interfaces) != 0 {
				r.Implementations[def.Name] = append([]string(nil), def.Interfaces...)
				r.ImplementationOrder = append(r.ImplementationOrder, def.Name)
			}

		case ast.Interface:
			names := make([]string, 0, len(def.Fields))
			for _, field := range def.Fields {
				names = append(names, field.Name)
			}
			r.InterfaceFields[def.Name] = names
			if len(def.Fields) == 0 {
				continue
			}
			typeDef, err := r.buildTypeDef(def)
			if err != nil {
				return nil, err
			}
			r.Types[def.Name] = typeDef
			r.TypeOrder = append(r.TypeOrder, def.Name)
		}
	}

	if err := r.buildRoots(schemaDoc); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Registry) buildTypeDef(def *ast.Definition) (*TypeDef, error) {
	typeDef := &TypeDef{
		Name:       def.Name,
		Kind:       def.Kind,
		Fields:     make([]*FieldDef, 0, len(def.Fields)),
		Interfaces: def.Interfaces,
		Position:   def.Position,
	}
	for _, field := range def.Fields {
		fieldDef, err := r.buildFieldDef(field)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.Name, field.Name, err)
		}
		typeDef.Fields = append(typeDef.Fields, fieldDef)
	}

	return typeDef, nil
}

func (r *Registry) buildFieldDef(field *ast.FieldDefinition) (*FieldDef, error) {
	desc, err := ResolveType(field.Type, r.Scalars)
	if err != nil {
		return nil, err
	}

	fieldDef := &FieldDef{
		Name: field.Name,
	}
	if !desc.IsScalar {
		fieldDef.TargetType = desc.BaseName
	}
	for _, arg := range field.Arguments {
		fieldDef.Arguments = append(fieldDef.Arguments, &ArgumentDef{
			Name: arg.Name,
			Type: arg.Type,
		})
	}

	return fieldDef, nil
}

func (r *Registry) buildRoots(schemaDoc *ast.SchemaDocument) error {
	var defs ast.SchemaDefinitionList
	defs = append(defs, schemaDoc.Schema...)
	defs = append(defs, schemaDoc.SchemaExtension...)
	for _, def := range defs {
		for _, opType := range def.OperationTypes {
			switch opType.Operation {
			case ast.Query, ast.Mutation, ast.Subscription:
				r.Roots[opType.Operation] = opType.Type
			default:
				return fmt.Errorf("unknown operation kind %q", opType.Operation)
			}
		}
	}

	return nil
}

// mergeDefinitions folds type extensions into their base definitions.
// Built-in definitions are dropped. The returned definitions are copies.
func mergeDefinitions(schemaDoc *ast.SchemaDocument) ast.DefinitionList {
	var merged ast.DefinitionList
	index := make(map[string]*ast.Definition)

	add := func(def *ast.Definition, extension bool) {
		if def.BuiltIn || strings.HasPrefix(def.Name, "__") {
			return
		}
		if base, ok := index[def.Name]; ok && extension {
			base.Fields = append(base.Fields, def.Fields...)
			base.Interfaces = append(base.Interfaces, def.Interfaces...)
			return
		} else if ok {
			// duplicated definition, the first one wins
			return
		}

		cp := *def
		cp.Fields = append(ast.FieldList(nil), def.Fields...)
		cp.Interfaces = append([]string(nil), def.Interfaces...)
		index[def.Name] = &cp
		merged = append(merged, &cp)
	}

	for _, def := range schemaDoc.Definitions {
		add(def, false)
	}
	for _, def := range schemaDoc.Extensions {
		add(def, true)
	}

	return merged
}
