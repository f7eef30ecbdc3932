package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/typeforge-platform/typeforge/internal/codegen"
	"github.com/typeforge-platform/typeforge/internal/config"
	"github.com/typeforge-platform/typeforge/internal/dev"
	"github.com/typeforge-platform/typeforge/internal/schema"
)

// Generate runs every configured target backend over the project's bundle.
// One failing target is reported against its own artifact and does not stop
// the others.
func (c *Controller) Generate(ctx context.Context) error {
	cmd := &GenerateCommand{
		registry: codegen.DefaultRegistry,
		logger:   log.Logger.With().Str("component", "generate").Logger(),
	}

	cfg, projectRoot, err := c.loadConfig()
	if err != nil {
		return err
	}

	if c.Flags.Watch {
		return cmd.Watch(ctx, cfg, projectRoot)
	}
	return cmd.Run(cfg, projectRoot)
}

func (c *Controller) loadConfig() (*config.Config, string, error) {
	if c.Flags.Config != "" {
		cfg, err := config.LoadConfigFromPath(c.Flags.Config)
		if err != nil {
			return nil, "", err
		}
		return cfg, filepath.Dir(c.Flags.Config), nil
	}
	return config.LoadConfig()
}

// GenerateCommand holds the pieces of one generate invocation.
type GenerateCommand struct {
	registry *codegen.Registry
	logger   zerolog.Logger
}

// Run loads the bundle and generates every configured target once.
func (g *GenerateCommand) Run(cfg *config.Config, projectRoot string) error {
	if len(cfg.Targets) == 0 {
		return fmt.Errorf("no targets configured in typeforge.json")
	}

	bundlePath := resolvePath(projectRoot, cfg.Bundle)
	parsed, err := schema.LoadBundle(bundlePath)
	if err != nil {
		return err
	}
	g.logger.Info().
		Str("bundle", bundlePath).
		Int("structs", len(parsed.Structs)).
		Int("enums", len(parsed.Enums)).
		Int("aliases", len(parsed.Aliases)).
		Msg("loaded bundle")

	var failures []error
	for _, target := range cfg.Targets {
		if err := g.generateTarget(target, parsed, projectRoot); err != nil {
			g.logger.Error().Err(err).
				Str("language", target.Language).
				Str("output", target.Output).
				Msg("target failed")
			failures = append(failures, fmt.Errorf("target %s: %w", target.Language, err))
		}
	}
	return errors.Join(failures...)
}

func (g *GenerateCommand) generateTarget(target config.Target, parsed *schema.ParsedData, projectRoot string) error {
	lang, err := g.registry.Get(target.Language, codegen.Options{
		TypeMappings:    target.TypeMappings,
		IncludeComments: !target.OmitComments,
	})
	if err != nil {
		return err
	}

	pipeline := codegen.NewPipeline(lang, g.logger)
	document, genErr := pipeline.Generate(parsed)
	if document == nil {
		return genErr
	}

	outputPath := resolvePath(projectRoot, target.Output)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, document, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	event := g.logger.Info()
	if genErr != nil {
		// Partial document: some declarations were skipped but the artifact
		// is still usable for the rest.
		event = g.logger.Warn().Err(genErr)
	}
	event.Str("language", lang.Language()).Str("output", outputPath).Msg("generated")
	return genErr
}

// Watch regenerates whenever the bundle or config changes.
func (g *GenerateCommand) Watch(ctx context.Context, cfg *config.Config, projectRoot string) error {
	if err := g.Run(cfg, projectRoot); err != nil {
		// Keep watching; the next change may fix the bundle.
		g.logger.Error().Err(err).Msg("initial generation failed")
	}

	watcher, err := dev.NewWatcher(cfg.Dev.Watch, cfg.Dev.Exclude, func(path string) {
		g.logger.Info().Str("path", path).Msg("change detected, regenerating")
		if err := g.Run(cfg, projectRoot); err != nil {
			g.logger.Error().Err(err).Msg("generation failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.AddDirectory(projectRoot); err != nil {
		return fmt.Errorf("failed to watch project directory: %w", err)
	}

	g.logger.Info().Str("root", projectRoot).Msg("watching for changes")
	return watcher.Start(ctx)
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
