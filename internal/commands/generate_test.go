package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge-platform/typeforge/internal/codegen"
	"github.com/typeforge-platform/typeforge/internal/config"
)

const personBundle = `{
	"structs": [
		{
			"name": {"original": "Person", "wire": "Person"},
			"fields": [
				{"name": {"original": "name", "wire": "name"}, "type": {"kind": "string"}},
				{"name": {"original": "info", "wire": "info"}, "type": {"kind": "optional", "inner": {"kind": "string"}}, "hasDefault": true}
			]
		}
	]
}`

func newTestCommand() *GenerateCommand {
	return &GenerateCommand{
		registry: codegen.DefaultRegistry,
		logger:   zerolog.Nop(),
	}
}

func writeProject(t *testing.T, cfg *config.Config) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "types.bundle.json"), []byte(personBundle), 0644))
	if cfg.Bundle == "" {
		cfg.Bundle = "./types.bundle.json"
	}
	return root
}

func TestGenerateCommand_Run(t *testing.T) {
	// Test: One target end to end: bundle read, document generated, artifact
	// written relative to the project root
	cfg := &config.Config{
		Targets: []config.Target{
			{Language: "python", Output: "./generated/types.py"},
		},
	}
	root := writeProject(t, cfg)

	require.NoError(t, newTestCommand().Run(cfg, root))

	out, err := os.ReadFile(filepath.Join(root, "generated", "types.py"))
	require.NoError(t, err)

	expected := "\"\"\"\n" +
		" Generated by typeforge dev\n" +
		"\"\"\"\n" +
		"from __future__ import annotations\n" +
		"\n" +
		"from pydantic import BaseModel\n" +
		"from typing import Optional\n" +
		"\n\n" +
		"class Person(BaseModel):\n" +
		"    name: str\n" +
		"    info: Optional[str] = None\n" +
		"\n\n"
	assert.Equal(t, expected, string(out))
}

func TestGenerateCommand_MultipleTargets(t *testing.T) {
	// Test: Every configured target produces its own artifact
	cfg := &config.Config{
		Targets: []config.Target{
			{Language: "python", Output: "./out/types.py"},
			{Language: "typescript", Output: "./out/types.ts"},
		},
	}
	root := writeProject(t, cfg)

	require.NoError(t, newTestCommand().Run(cfg, root))

	py, err := os.ReadFile(filepath.Join(root, "out", "types.py"))
	require.NoError(t, err)
	assert.Contains(t, string(py), "class Person(BaseModel):")

	ts, err := os.ReadFile(filepath.Join(root, "out", "types.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(ts), "export interface Person {")
	assert.Contains(t, string(ts), "info?: string;")
}

func TestGenerateCommand_FailingTargetDoesNotStopOthers(t *testing.T) {
	// Test: An unsupported language fails its own target only; the other
	// artifact is still written and the joined error names the bad target
	cfg := &config.Config{
		Targets: []config.Target{
			{Language: "cobol", Output: "./out/types.cob"},
			{Language: "typescript", Output: "./out/types.ts"},
		},
	}
	root := writeProject(t, cfg)

	err := newTestCommand().Run(cfg, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target cobol")
	assert.Contains(t, err.Error(), "unsupported language: cobol")

	_, statErr := os.Stat(filepath.Join(root, "out", "types.ts"))
	assert.NoError(t, statErr)
}

func TestGenerateCommand_NoTargets(t *testing.T) {
	// Test: A config without targets is rejected before the bundle is read
	cfg := &config.Config{Bundle: "./types.bundle.json"}
	err := newTestCommand().Run(cfg, t.TempDir())
	assert.ErrorContains(t, err, "no targets configured")
}

func TestGenerateCommand_MissingBundle(t *testing.T) {
	// Test: A missing bundle reports the read failure
	cfg := &config.Config{
		Bundle:  "./missing.bundle.json",
		Targets: []config.Target{{Language: "python", Output: "./out/types.py"}},
	}
	err := newTestCommand().Run(cfg, t.TempDir())
	assert.ErrorContains(t, err, "failed to read bundle")
}

func TestController_LoadConfigFromFlag(t *testing.T) {
	// Test: An explicit --config path wins over the directory search, and the
	// project root is the config file's directory
	root := t.TempDir()
	configPath := filepath.Join(root, "typeforge.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"name": "flagged", "targets": [{"language": "python"}]}`), 0644))

	c := &Controller{Flags: &Flags{Config: configPath}}
	cfg, projectRoot, err := c.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "flagged", cfg.Name)
	assert.Equal(t, root, projectRoot)
}
