package docgen

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/gqldocgen/internal/log"
	"github.com/vvakame/gqldocgen/internal/registry"
)

// DefaultRecursionLimit is used when WithRecursionLimit is not given.
const DefaultRecursionLimit = 5

// ExistingOperations reports operation names which are already defined in
// hand-written documents. Root fields with such names are not generated.
type ExistingOperations interface {
	Has(operation ast.Operation, name string) bool
}

type generateConfig struct {
	recursionLimit int
	existing       ExistingOperations
}

type GenerateOption func(cfg *generateConfig)

func WithRecursionLimit(limit int) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.recursionLimit = limit
	}
}

func WithExistingOperations(existing ExistingOperations) GenerateOption {
	return func(cfg *generateConfig) {
		cfg.existing = existing
	}
}

var operationKinds = []ast.Operation{
	ast.Query,
	ast.Mutation,
	ast.Subscription,
}

// Generate builds one operation per root field and prints them.
func Generate(ctx context.Context, r *registry.Registry, opts ...GenerateOption) (string, error) {
	operations, err := BuildOperations(ctx, r, opts...)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	NewFormatter(&buf).FormatOperations(operations)

	return buf.String(), nil
}

// BuildOperations validates the registry and expands every root field which
// isn't excluded by WithExistingOperations.
func BuildOperations(ctx context.Context, r *registry.Registry, opts ...GenerateOption) ([]*Operation, error) {
	logger := log.FromContext(ctx)

	cfg := &generateConfig{
		recursionLimit: DefaultRecursionLimit,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.recursionLimit < 0 {
		return nil, fmt.Errorf("recursion limit must not be negative: %d", cfg.recursionLimit)
	}

	if err := registry.ValidateInterfaces(r); err != nil {
		return nil, err
	}

	e := &expander{
		registry:       r,
		recursionLimit: cfg.recursionLimit,
	}

	var operations []*Operation
	for _, kind := range operationKinds {

		rootType := r.RootType(kind)
		if rootType == nil {
			continue
		}

		for _, field := range rootType.Fields {
			if cfg.existing != nil && cfg.existing.Has(kind, field.Name) {
				logger.V(log.Debug).Info("skip existing operation", "operation", kind, "name", field.Name)
				continue
			}

			selection, inputs, err := e.expandRoot(field)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", kind, field.Name, err)
			}
			if selection == nil {
				logger.Info("operation has no selectable fields, skipped", "operation", kind, "name", field.Name)
				continue
			}

			operation := &Operation{
				Kind:      kind,
				Name:      field.Name,
				Variables: variableDefinitions(inputs),
				Selection: selection,
			}
			logger.V(log.Debug).Info(
				"operation generated",
				"operation", kind,
				"name", field.Name,
				"variables", len(operation.Variables),
			)
			operations = append(operations, operation)
		}
	}

	return operations, nil
}

// variableDefinitions keeps the first input of each variable name.
func variableDefinitions(inputs []*OperationInput) []*VariableDefinition {
	seen := make(map[string]bool, len(inputs))
	variables := make([]*VariableDefinition, 0, len(inputs))
	for _, input := range inputs {
		name := input.VariableName()
		if seen[name] {
			continue
		}
		seen[name] = true
		variables = append(variables, &VariableDefinition{
			Name: name,
			Type: input.Type,
		})
	}

	return variables
}
