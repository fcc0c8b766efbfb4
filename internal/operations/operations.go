package operations

import (
	"context"
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vvakame/gqldocgen/internal/log"
)

// Set holds operation names grouped by operation kind.
type Set struct {
	names map[ast.Operation]map[string]bool
}

func NewSet() *Set {
	return &Set{names: make(map[ast.Operation]map[string]bool)}
}

func (s *Set) Add(operation ast.Operation, name string) error {
	switch operation {
	case ast.Query, ast.Mutation, ast.Subscription:
	default:
		return fmt.Errorf("unknown operation kind %q of %s", operation, name)
	}
	if s.names[operation] == nil {
		s.names[operation] = make(map[string]bool)
	}
	s.names[operation][name] = true
	return nil
}

func (s *Set) Has(operation ast.Operation, name string) bool {
	if s == nil {
		return false
	}
	return s.names[operation][name]
}

// Names returns the sorted names registered for operation.
func (s *Set) Names(operation ast.Operation) []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.names[operation]))
	for name := range s.names[operation] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collect parses the given executable documents and records the names of
// their operations. Anonymous operations are ignored.
func Collect(ctx context.Context, sources ...*ast.Source) (*Set, error) {
	logger := log.FromContext(ctx)

	set := NewSet()
	for _, source := range sources {
		queryDoc, gErr := parser.ParseQuery(source)
		if gErr != nil {
			return nil, gErr
		}
		if err := set.AddDocument(queryDoc); err != nil {
			return nil, fmt.Errorf("%s: %w", source.Name, err)
		}
		logger.V(log.Debug).Info("document scanned", "source", source.Name, "operations", len(queryDoc.Operations))
	}

	return set, nil
}

func (s *Set) AddDocument(queryDoc *ast.QueryDocument) error {
	for _, op := range queryDoc.Operations {
		if op.Name == "" {
			continue
		}
		if err := s.Add(op.Operation, op.Name); err != nil {
			return err
		}
	}
	return nil
}
