// Command workflow-docs renders every authored workflow definition as a
// Mermaid diagram and a YAML document, for checking into the docs tree.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/crewledger/crew-common/workflow/definitions"
	"github.com/crewledger/crew-common/workflow/visualizer"
)

type config struct {
	// OutDir is where the generated files land, one pair per entity type.
	OutDir string `env:"WORKFLOW_DOCS_OUT" envDefault:"docs/workflows"`

	// Direction is the Mermaid diagram flow, "TD" or "LR".
	Direction string `env:"WORKFLOW_DOCS_DIRECTION" envDefault:"TD"`

	// ShowCapabilities includes required capabilities on edge labels.
	ShowCapabilities bool `env:"WORKFLOW_DOCS_CAPABILITIES" envDefault:"false"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := env.ParseAs[config]()
	if err != nil {
		logger.Error("failed to parse configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	opts := visualizer.DefaultOptions().
		WithDirection(cfg.Direction).
		WithShowCapabilities(cfg.ShowCapabilities)

	for _, def := range definitions.All() {
		diagram, err := visualizer.GenerateMermaidWithOptions(def, opts)
		if err != nil {
			return fmt.Errorf("failed to render %s diagram: %w", def.EntityType, err)
		}

		doc, err := visualizer.ExportYAML(def)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", def.EntityType, err)
		}

		base := filepath.Join(cfg.OutDir, string(def.EntityType))

		if err := os.WriteFile(base+".md", []byte(diagram), 0o644); err != nil {
			return fmt.Errorf("failed to write %s diagram: %w", def.EntityType, err)
		}

		if err := os.WriteFile(base+".yaml", doc, 0o644); err != nil {
			return fmt.Errorf("failed to write %s document: %w", def.EntityType, err)
		}

		logger.Info("generated workflow docs",
			"entity_type", def.EntityType,
			"states", len(def.States),
			"transitions", len(def.Transitions))
	}

	return nil
}
