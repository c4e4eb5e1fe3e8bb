package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/allgoodman9/password-auditor/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/password-auditor.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new password-auditor configuration file",
		Long: `Initialize creates a new .password-auditor configuration file in the current directory.

The generated file includes:
- Default overrides applied to every audited file
- Commented examples for per-file configurations
- A place to extend the common-password list

Examples:
  # Create .password-auditor in current directory
  password-auditor init

  # Create config file at a specific path
  password-auditor init -o myconfig.yaml

  # Force overwrite existing file
  password-auditor init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/password-auditor.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure per-file settings such as:")
	fmt.Println("  - Minimum length for legacy password exports")
	fmt.Println("  - Weakest and detail list sizes per file")
	fmt.Println("  - Extra common passwords to flag")

	return nil
}
