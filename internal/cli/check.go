// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Exit codes for check command
const (
	ExitCodeCovered    = 0 // Every controller has a test file
	ExitCodeMissing    = 1 // At least one test file is missing
	ExitCodeCheckError = 2 // Error during analysis
)

var checkModels bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every controller has a generated test file",
	Long: `Check reports controllers whose test file does not exist yet.

No files are written. This is useful in CI pipelines to make sure new
routes come with tests.

Exit codes:
  0  Every test file exists
  1  Some test files are missing
  2  Error during analysis

Example:
  pestgen check                       # Check route test files
  pestgen check --models              # Also check model test files`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkModels, "models", false, "also check model test files")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}
	if !checkModels {
		cfg.ModelTests.Enabled = false
	}

	s, err := openSession(cfg, newFs(), cmd.ErrOrStderr())
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}
	defer s.Close()

	endpoints, err := s.endpoints(cmd.Context())
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	w := s.routeWriter()
	var missing []string
	units := s.generator().Plan(endpoints)
	for _, unit := range units {
		if !unit.Writable() {
			continue
		}
		path := w.PathFor(unit.Key)
		if !w.Exists(path) {
			missing = append(missing, path)
		}
	}

	if cfg.ModelTests.Enabled {
		// A dry model pass reports missing files as written.
		res, err := modelsDryRun(s)
		if err != nil {
			return &ExitError{Code: ExitCodeCheckError, Err: err}
		}
		missing = append(missing, res...)
	}

	printVerbose(cmd.OutOrStdout(), "Checked %d test files in %s", len(units), w.Root())

	if len(missing) > 0 {
		for _, path := range missing {
			printInfo(cmd.OutOrStdout(), "  missing %s", pathStyle.Render(path))
		}
		return &ExitError{
			Code: ExitCodeMissing,
			Err:  fmt.Errorf("%d test files are missing, run 'pestgen generate'", len(missing)),
		}
	}

	printSuccess(cmd.OutOrStdout(), "All test files present")
	return nil
}

// modelsDryRun runs the model pass on an in-memory overlay and returns the
// paths it would create.
func modelsDryRun(s *session) ([]string, error) {
	dry := *s
	dry.fs = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(s.fs), afero.NewMemMapFs())
	dry.warn = io.Discard

	res, err := dry.generateModels()
	if err != nil {
		return nil, err
	}
	return res.Written, nil
}
