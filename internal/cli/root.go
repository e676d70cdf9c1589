// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for pestgen.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile     string
	projectRoot string
	verbose     bool
	quiet       bool
)

// Console styles
var (
	infoStyle    = lipgloss.NewStyle()
	verboseStyle = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pestgen",
	Short: "Pest test skeleton generator for Laravel routes",
	Long: `pestgen reads the route table of a Laravel application and writes Pest
test skeletons for every eligible endpoint, one file per controller.

Existing test files are never overwritten unless --force is given, so
pestgen can be re-run safely after routes are added.

Example:
  pestgen generate                     # Generate tests for the project in the current directory
  pestgen generate --dry-run           # Show what would be written
  pestgen init                         # Create a pestgen.yaml config file
  pestgen check                        # Fail when a controller has no test file
  pestgen watch                        # Regenerate when routes change`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: pestgen.yaml)")
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "project", "p", "", "Laravel project root (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(routesCmd)
}

// printInfo prints a message if not in quiet mode.
func printInfo(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf(format, args...)))
	}
}

// printSuccess prints a highlighted message if not in quiet mode.
func printSuccess(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
	}
}

// printWarn prints a warning if not in quiet mode.
func printWarn(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf(format, args...)))
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(w io.Writer, format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintln(w, verboseStyle.Render(fmt.Sprintf(format, args...)))
	}
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+fmt.Sprintf(format, args...)))
}
