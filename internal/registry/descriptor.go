package registry

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// ErrMalformedType is returned for a type reference which is neither
// a named type, a non-null wrapper nor a list wrapper.
var ErrMalformedType = errors.New("malformed type reference")

// ScalarSet holds the names of terminal types.
type ScalarSet map[string]struct{}

func (s ScalarSet) Add(name string) {
	s[name] = struct{}{}
}

func (s ScalarSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// TypeDescriptor is the normalized form of a type reference.
type TypeDescriptor struct {
	BaseName   string
	IsNullable bool
	IsList     bool
	IsScalar   bool
}

// String renders the descriptor in variable definition syntax.
// Only one list level is kept, element nullability follows the outer one.
func (d TypeDescriptor) String() string {
	switch {
	case !d.IsNullable && d.IsList:
		return "[" + d.BaseName + "!]!"
	case !d.IsNullable:
		return d.BaseName + "!"
	case d.IsList:
		return "[" + d.BaseName + "]"
	default:
		return d.BaseName
	}
}

// ResolveType unwraps typ into a TypeDescriptor.
func ResolveType(typ *ast.Type, scalars ScalarSet) (TypeDescriptor, error) {
	if typ == nil {
		return TypeDescriptor{}, ErrMalformedType
	}

	switch {
	case typ.NonNull:
		inner := *typ
		inner.NonNull = false
		desc, err := ResolveType(&inner, scalars)
		if err != nil {
			return TypeDescriptor{}, err
		}
		desc.IsNullable = false
		return desc, nil

	case typ.Elem != nil:
		desc, err := ResolveType(typ.Elem, scalars)
		if err != nil {
			return TypeDescriptor{}, err
		}
		desc.IsList = true
		desc.IsNullable = true
		return desc, nil

	case typ.NamedType != "":
		return TypeDescriptor{
			BaseName:   typ.NamedType,
			IsNullable: true,
			IsScalar:   scalars.Has(typ.NamedType),
		}, nil

	default:
		return TypeDescriptor{}, fmt.Errorf("%w: %q", ErrMalformedType, typ.String())
	}
}
