// Package docgen is a gqlgen plugin which writes generated operation
// documents next to the generated server code.
//
//	api.Generate(cfg, api.AddPlugin(docgen.New("graph/operations.graphql")))
package docgen

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/codegen/config"
	"github.com/99designs/gqlgen/plugin"
	"github.com/go-logr/logr"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/gqldocgen/generator"
	"github.com/vvakame/gqldocgen/internal/log"
)

var _ plugin.ConfigMutator = (*Plugin)(nil)

type Plugin struct {
	filename        string
	recursionLimit  *int
	documentSources []*ast.Source
	validate        bool
	logger          logr.Logger
}

type Option func(p *Plugin)

func WithRecursionLimit(limit int) Option {
	return func(p *Plugin) {
		p.recursionLimit = generator.Limit(limit)
	}
}

// WithDocuments excludes root fields already covered by the given documents.
func WithDocuments(sources ...*ast.Source) Option {
	return func(p *Plugin) {
		p.documentSources = append(p.documentSources, sources...)
	}
}

func WithValidation() Option {
	return func(p *Plugin) {
		p.validate = true
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

func New(filename string, opts ...Option) *Plugin {
	p := &Plugin{
		filename: filename,
		logger:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Plugin) Name() string {
	return "docgen"
}

func (p *Plugin) MutateConfig(cfg *config.Config) error {
	if p.filename == "" {
		return fmt.Errorf("docgen: output filename is required")
	}

	ctx := log.WithLogger(context.Background(), p.logger.WithName(p.Name()))

	text, err := generator.Generate(ctx, &generator.Config{
		SchemaSources:   cfg.Sources,
		DocumentSources: p.documentSources,
		RecursionLimit:  p.recursionLimit,
		Validate:        p.validate,
	})
	if err != nil {
		return fmt.Errorf("docgen: %w", err)
	}

	if err := generator.WriteFile(p.filename, text); err != nil {
		return fmt.Errorf("docgen: %w", err)
	}

	return nil
}
