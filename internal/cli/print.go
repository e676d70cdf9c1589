// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pestgen/pestgen/internal/util"
	"github.com/pestgen/pestgen/pkg/types"
)

var printCmd = &cobra.Command{
	Use:   "print <controller>",
	Short: "Print the generated test file of a controller to stdout",
	Long: `Print renders the test file pestgen would write for one controller and
prints it to standard output. Nothing is written to disk.

The controller is matched by fully qualified class name or by class name.

Example:
  pestgen print PostController
  pestgen print 'App\Http\Controllers\Auth\LoginController'
  pestgen print PostController > tests/Feature/PostTest.php`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
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

	content, _ := gen.RenderUnit(unit)
	fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}

// findUnit finds the unit of a controller by unit key, class name or class
// basename. Matching ignores case and a leading backslash.
func findUnit(units []types.Unit, name string) (types.Unit, error) {
	name = strings.TrimPrefix(name, `\`)

	var matches []types.Unit
	for _, unit := range units {
		if !unit.Writable() {
			continue
		}
		if strings.EqualFold(unit.Key, name) || strings.EqualFold(unit.Handler.Class, name) {
			return unit, nil
		}
		if strings.EqualFold(util.ClassBasename(unit.Handler.Class), name) {
			matches = append(matches, unit)
		}
	}

	switch len(matches) {
	case 0:
		return types.Unit{}, fmt.Errorf("no routes found for controller %q", name)
	case 1:
		return matches[0], nil
	}

	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m.Key)
	}
	return types.Unit{}, fmt.Errorf("controller %q is ambiguous: %s", name, strings.Join(keys, ", "))
}
