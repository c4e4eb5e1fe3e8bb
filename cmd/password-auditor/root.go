// Package main provides the entry point for the password-auditor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for password-auditor.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password-auditor",
		Short: "Password strength auditing tool for password files",
		Long: `password-auditor scores the passwords in one or more files and reports
how weak or strong they are. It flags short, predictable and common
passwords and highlights the weakest entries of each file.

Audit results can be recorded in a local history database so that
repeated audits of the same file show whether its passwords improved.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
