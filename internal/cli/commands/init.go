package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell/internal/config"
)

const configTemplate = `# Inkwell project configuration
content_dir: content
state_path: .inkwell/state.db
port: 4600
watch: true
`

const welcomePage = `---
name: Welcome
description: Your first inkwell page
---

# Welcome

This folder is your documentation workspace. Every markdown file
becomes a sidebar entry; every directory becomes a folder. Reorder
the sidebar from the UI or with "inkwell browse".
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new inkwell project",
		Long: `Initialize a new inkwell project with a content root and configuration.

This creates:
  - inkwell.yaml configuration file
  - content/ directory with a welcome page
  - .inkwell/ directory for local state`,
		Example: `  # Initialize in the current directory
  inkwell init

  # Initialize in a new directory
  inkwell init my-docs

  # Force overwrite existing config
  inkwell init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.FileName)
	}

	if err := os.WriteFile(configPath, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}

	contentDir := filepath.Join(dir, config.DefaultContentDir)
	if err := os.MkdirAll(contentDir, 0750); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	welcomePath := filepath.Join(contentDir, "welcome.md")
	if _, err := os.Stat(welcomePath); os.IsNotExist(err) {
		if err := os.WriteFile(welcomePath, []byte(welcomePage), 0600); err != nil {
			return fmt.Errorf("failed to write welcome page: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, ".inkwell"), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Inkwell project initialized!")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Add markdown pages under content/")
	fmt.Fprintln(out, "  2. Run 'inkwell serve' to start the API server")
	fmt.Fprintln(out, "  3. Run 'inkwell browse' to arrange the sidebar")

	return nil
}
