package registry

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const (
	CodeInterfaceFieldMissing = "INTERFACE_FIELD_MISSING"
	CodeUnknownInterface      = "UNKNOWN_INTERFACE"
)

// ValidateInterfaces checks that every object type declares all the fields of
// the interfaces it implements. The first violation found is returned.
func ValidateInterfaces(r *Registry) error {
	for _, typeName := range r.ImplementationOrder {
		typeDef := r.Types[typeName]
		if typeDef == nil {
			continue
		}

		declared := make(map[string]bool, len(typeDef.Fields))
		for _, field := range typeDef.Fields {
			declared[field.Name] = true
		}

		for _, interfaceName := range r.Implementations[typeName] {
			fieldNames, ok := r.InterfaceFields[interfaceName]
			if !ok {
				return newValidationError(
					typeDef.Position,
					CodeUnknownInterface,
					"Unknown interface %s in %s",
					interfaceName, typeName,
				)
			}
			for _, fieldName := range fieldNames {
				if declared[fieldName] {
					continue
				}
				gErr := newValidationError(
					typeDef.Position,
					CodeInterfaceFieldMissing,
					"Missing %s in %s",
					fieldName, typeName,
				)
				gErr.Extensions["interface"] = interfaceName
				return gErr
			}
		}
	}

	return nil
}

func newValidationError(pos *ast.Position, code string, format string, args ...interface{}) *gqlerror.Error {
	var gErr *gqlerror.Error
	if pos != nil && pos.Src != nil {
		gErr = gqlerror.ErrorPosf(pos, format, args...)
	} else {
		gErr = gqlerror.Errorf(format, args...)
	}
	gErr.Rule = "InterfaceFieldsImplemented"
	if gErr.Extensions == nil {
		gErr.Extensions = make(map[string]interface{})
	}
	gErr.Extensions["code"] = code

	return gErr
}
