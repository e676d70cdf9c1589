// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var diffUnified int

var diffCmd = &cobra.Command{
	Use:   "diff <controller>",
	Short: "Compare a controller's test file with freshly generated tests",
	Long: `Diff shows how an existing test file differs from what pestgen would
generate for the controller today. Use it to spot routes added after the
file was first generated.

Example:
  pestgen diff PostController             # Unified diff with 3 lines of context
  pestgen diff PostController --unified 0 # Changed lines only`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().IntVarP(&diffUnified, "unified", "U", 3, "number of context lines in unified diff")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openSession(cfg, newFs(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	endpoints, err := s.endpoints(cmd.Context())
	if err != nil {
		return err
	}

	gen := s.generator()
	unit, err := findUnit(gen.Plan(endpoints), args[0])
	if err != nil {
		return err
	}

	path := gen.PathFor(unit)
	w := s.routeWriter()
	if !w.Exists(path) {
		printInfo(cmd.OutOrStdout(), "%s does not exist yet", path)
		return nil
	}

	existing, err := w.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	generated, _ := gen.RenderUnit(unit)

	text, err := unifiedDiff(path, string(existing), generated, diffUnified)
	if err != nil {
		return err
	}
	if text == "" {
		printSuccess(cmd.OutOrStdout(), "%s is up to date", path)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// unifiedDiff returns the unified diff from existing to generated, or ""
// when they are equal.
func unifiedDiff(path, existing, generated string, context int) (string, error) {
	if existing == generated {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(existing),
		B:        difflib.SplitLines(generated),
		FromFile: path,
		ToFile:   "generated",
		Context:  context,
	})
}
