package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	json "github.com/goccy/go-json"

	"github.com/typeforge-platform/typeforge/internal/codegen"
	"github.com/typeforge-platform/typeforge/internal/config"
)

type InitOptions struct {
	ProjectName string
	Bundle      string
	Languages   []string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type InitCommand struct {
	filesystem FileSystem
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand() *InitCommand {
	return &InitCommand{filesystem: &osFileSystem{}}
}

func (c *Controller) Init(ctx context.Context) error {
	cmd := NewInitCommand()
	return cmd.Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(_ context.Context, opts ...tea.ProgramOption) error {
	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	cfg := &config.Config{
		Name:   options.ProjectName,
		Bundle: options.Bundle,
	}
	for _, language := range options.Languages {
		cfg.Targets = append(cfg.Targets, config.Target{Language: language})
	}

	if err := ic.writeConfig(options.ProjectName, cfg); err != nil {
		return err
	}

	fmt.Printf("Created %s/typeforge.json\n", options.ProjectName)
	return nil
}

func (ic *InitCommand) writeConfig(projectDir string, cfg *config.Config) error {
	if err := ic.filesystem.MkdirAll(projectDir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(projectDir, "typeforge.json")
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	var projectName string
	var bundle string
	var languages []string

	form := ic.createInitForm(&projectName, &bundle, &languages)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return &InitOptions{
		ProjectName: projectName,
		Bundle:      bundle,
		Languages:   languages,
	}, nil
}

func (ic *InitCommand) createInitForm(projectName, bundle *string, languages *[]string) *huh.Form {
	languageOptions := make([]huh.Option[string], 0)
	for _, language := range codegen.DefaultRegistry.Languages() {
		// Skip short aliases in the picker
		if len(language) <= 2 {
			continue
		}
		languageOptions = append(languageOptions, huh.NewOption(language, language))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Directory to create typeforge.json in").
				Value(projectName).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("project name cannot be empty")
					}
					if _, err := ic.filesystem.Stat(filepath.Join(s, "typeforge.json")); err == nil {
						return fmt.Errorf("%s already contains a typeforge.json", s)
					}
					return nil
				}),

			huh.NewInput().
				Title("Bundle path").
				Description("Parsed schema bundle the front end produces").
				Placeholder("./types.bundle.json").
				Value(bundle),

			huh.NewMultiSelect[string]().
				Title("Target languages").
				Description("Backends to generate").
				Options(languageOptions...).
				Value(languages),
		),
	)
}
