package schema

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/gqldocgen/internal/registry"
)

var specifiedScalarTypes = []string{
	"String",
	"Int",
	"Float",
	"Boolean",
	"ID",
}

// Scalars returns the names which terminate field expansion: the specified
// scalars, every scalar declared in the document and every enum.
func Scalars(schemaDoc *ast.SchemaDocument) registry.ScalarSet {
	scalars := make(registry.ScalarSet)
	for _, name := range specifiedScalarTypes {
		scalars.Add(name)
	}

	collect := func(defs ast.DefinitionList) {
		for _, def := range defs {
			switch def.Kind {
			case ast.Scalar, ast.Enum:
				scalars.Add(def.Name)
			}
		}
	}
	if schemaDoc != nil {
		collect(schemaDoc.Definitions)
		collect(schemaDoc.Extensions)
	}

	return scalars
}
