package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/go-logr/stdr"
	"github.com/urfave/cli/v2"
	"github.com/vvakame/gqldocgen/generator"
	"github.com/vvakame/gqldocgen/internal/config"
	dlog "github.com/vvakame/gqldocgen/internal/log"
	"github.com/vvakame/gqldocgen/internal/schema"
	"github.com/vvakame/gqldocgen/internal/watch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newApp(os.Stdout).RunContext(ctx, os.Args)
	if err != nil {
		stop()
		log.Fatal(err)
	}
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "gqldocgen",
		Usage:     "generate GraphQL operation documents from a schema",
		UsageText: "gqldocgen [--config gqldocgen.yml] [--schema pattern]... [--output file]",
		Writer:    stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file; used when present if not given",
				Value:   config.DefaultFilename,
			},
			&cli.StringSliceFlag{
				Name:    "schema",
				Aliases: []string{"s"},
				Usage:   "SDL file pattern, `**` is supported (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:    "documents",
				Aliases: []string{"d"},
				Usage:   "hand-written operation documents to skip (repeatable)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file, `-` writes to stdout",
			},
			&cli.IntFlag{
				Name:  "recursion-limit",
				Usage: "how many times a type may be re-entered along one path",
				Value: generator.DefaultRecursionLimit,
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "validate generated documents against the schema",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "regenerate when schema or document files change",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose logging",
			},
		},
		Action: func(c *cli.Context) error {
			logger := stdr.New(log.New(c.App.ErrWriter, "", log.LstdFlags))
			if c.Bool("verbose") {
				stdr.SetVerbosity(dlog.Debug)
			}
			ctx := dlog.WithLogger(c.Context, logger)

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			if err := generate(ctx, cfg, c.App.Writer); err != nil {
				if !c.Bool("watch") {
					return err
				}
				logger.Error(err, "failed to generate")
			}

			if !c.Bool("watch") {
				return nil
			}

			return watch.Run(ctx, &watch.Options{
				Paths: func() ([]string, error) {
					schemaFiles, err := schema.ExpandPatterns(cfg.Schema)
					if err != nil {
						return nil, err
					}
					docFiles, err := documentFiles(cfg)
					if err != nil {
						return nil, err
					}
					return append(schemaFiles, docFiles...), nil
				},
				Match: func(file string) bool {
					if isOutput(cfg, file) {
						return false
					}
					return schema.Match(cfg.Schema, file) || schema.Match(cfg.Documents, file)
				},
				OnChange: func(ctx context.Context) error {
					dlog.FromContext(ctx).Info("regenerating")
					return generate(ctx, cfg, c.App.Writer)
				},
			})
		},
	}
}

// loadConfig reads the config file and applies flags on top of it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	filename := c.String("config")
	loaded, err := config.Load(filename)
	switch {
	case err == nil:
		cfg = loaded
	case errors.Is(err, os.ErrNotExist) && !c.IsSet("config"):
		// no config file, flags only
	default:
		return nil, err
	}

	if c.IsSet("schema") {
		cfg.Schema = c.StringSlice("schema")
	}
	if c.IsSet("documents") {
		cfg.Documents = c.StringSlice("documents")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("recursion-limit") {
		limit := c.Int("recursion-limit")
		cfg.RecursionLimit = &limit
	}
	if c.IsSet("validate") {
		cfg.Validate = c.Bool("validate")
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func generate(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	logger := dlog.FromContext(ctx)

	schemaSources, err := schema.LoadSources(cfg.Schema)
	if err != nil {
		return err
	}
	files, err := documentFiles(cfg)
	if err != nil {
		return err
	}
	documentSources, err := schema.ReadSources(files)
	if err != nil {
		return err
	}

	text, err := generator.Generate(ctx, &generator.Config{
		SchemaSources:   schemaSources,
		DocumentSources: documentSources,
		RecursionLimit:  generator.Limit(cfg.Limit()),
		Validate:        cfg.Validate,
	})
	if err != nil {
		return err
	}

	if cfg.Output == "-" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}

	if err := generator.WriteFile(cfg.Output, text); err != nil {
		return err
	}
	logger.Info("documents written", "output", cfg.Output)

	return nil
}

// documentFiles expands the document patterns. The output file is left out
// so a previous run isn't read as hand-written operations.
func documentFiles(cfg *config.Config) ([]string, error) {
	if len(cfg.Documents) == 0 {
		return nil, nil
	}
	files, err := schema.ExpandPatterns(cfg.Documents)
	if err != nil {
		return nil, err
	}
	if cfg.Output == "-" {
		return files, nil
	}
	return schema.Exclude(files, cfg.Output)
}

func isOutput(cfg *config.Config, file string) bool {
	if cfg.Output == "-" {
		return false
	}
	files, err := schema.Exclude([]string{file}, cfg.Output)
	return err == nil && len(files) == 0
}
