package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vvakame/gqldocgen/internal/docgen"
	"github.com/vvakame/gqldocgen/internal/log"
	"github.com/vvakame/gqldocgen/internal/operations"
	"github.com/vvakame/gqldocgen/internal/registry"
	"github.com/vvakame/gqldocgen/internal/schema"
)

const DefaultRecursionLimit = docgen.DefaultRecursionLimit

type Config struct {
	// SchemaSources are SDL sources. The GraphQL prelude is added implicitly.
	SchemaSources []*ast.Source
	// DocumentSources are hand-written executable documents. Root fields
	// named like one of their operations are not generated.
	DocumentSources []*ast.Source
	// RecursionLimit defaults to DefaultRecursionLimit when nil.
	RecursionLimit *int
	// Validate checks the generated documents against the schema.
	Validate bool
}

// Limit is a helper to fill Config.RecursionLimit.
func Limit(n int) *int {
	return &n
}

// Generate returns the documents for every root field of the schema.
func Generate(ctx context.Context, cfg *Config) (string, error) {
	logger := log.FromContext(ctx)

	if len(cfg.SchemaSources) == 0 {
		return "", fmt.Errorf("schema sources are must required")
	}

	schemaDoc, err := schema.Parse(cfg.SchemaSources...)
	if err != nil {
		return "", err
	}

	reg, err := registry.Build(schemaDoc, schema.Scalars(schemaDoc))
	if err != nil {
		return "", err
	}

	existing, err := operations.Collect(ctx, cfg.DocumentSources...)
	if err != nil {
		return "", err
	}

	limit := DefaultRecursionLimit
	if cfg.RecursionLimit != nil {
		limit = *cfg.RecursionLimit
	}

	logger.Info(
		"generating documents",
		"types", len(reg.TypeOrder),
		"recursionLimit", limit,
		"existingQueries", len(existing.Names(ast.Query)),
		"existingMutations", len(existing.Names(ast.Mutation)),
		"existingSubscriptions", len(existing.Names(ast.Subscription)),
	)

	text, err := docgen.Generate(
		ctx,
		reg,
		docgen.WithRecursionLimit(limit),
		docgen.WithExistingOperations(existing),
	)
	if err != nil {
		return "", err
	}

	if cfg.Validate && text != "" {
		if err := validate(cfg.SchemaSources, text); err != nil {
			return "", err
		}
	}

	return text, nil
}

func validate(sources []*ast.Source, text string) error {
	s, gErr := gqlparser.LoadSchema(schema.WithoutPrelude(sources)...)
	if gErr != nil {
		return fmt.Errorf("schema is invalid: %w", gErr)
	}

	_, gErrs := gqlparser.LoadQuery(s, text)
	if len(gErrs) != 0 {
		return fmt.Errorf("generated documents are invalid: %w", gqlerror.List(gErrs))
	}

	return nil
}

// WriteFile writes text to filename, creating parent directories.
// A trailing newline is added to non-empty output.
func WriteFile(filename string, text string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return os.WriteFile(filename, []byte(text), 0644)
}
