package schema

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// Parse parses the given SDL sources together with the GraphQL prelude.
// The result is not validated; definitions keep their declaration order.
func Parse(sources ...*ast.Source) (*ast.SchemaDocument, error) {
	inputs := append([]*ast.Source{validator.Prelude}, WithoutPrelude(sources)...)

	schemaDoc, gErr := parser.ParseSchemas(inputs...)
	if gErr != nil {
		return nil, gErr
	}

	return schemaDoc, nil
}

// WithoutPrelude drops the GraphQL prelude from sources, for callers which
// add it by themselves.
func WithoutPrelude(sources []*ast.Source) []*ast.Source {
	result := make([]*ast.Source, 0, len(sources))
	for _, source := range sources {
		if source.BuiltIn && source.Name == validator.Prelude.Name {
			continue
		}
		result = append(result, source)
	}
	return result
}
