// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pestgen/pestgen/internal/analyzer"
	"github.com/pestgen/pestgen/pkg/types"
)

var (
	routesAll  bool
	routesYAML bool
)

var (
	methodStyle  = lipgloss.NewStyle().Bold(true).Width(8)
	skippedStyle = lipgloss.NewStyle().Faint(true)
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes tests are generated for",
	Long: `Routes reads the route table from the configured source and lists the
endpoints that pass the filters.

Example:
  pestgen routes                     # Eligible routes
  pestgen routes --all               # All routes, excluded ones dimmed
  pestgen routes --yaml              # Machine readable output`,
	RunE: runRoutes,
}

func init() {
	routesCmd.Flags().BoolVar(&routesAll, "all", false, "include routes excluded by the filters")
	routesCmd.Flags().BoolVar(&routesYAML, "yaml", false, "print endpoints as YAML")
}

func runRoutes(cmd *cobra.Command, args []string) error {
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

	shown := endpoints
	if !routesAll {
		shown = analyzer.Filter(endpoints, cfg)
	}

	if routesYAML {
		data, err := yaml.Marshal(shown)
		if err != nil {
			return fmt.Errorf("failed to encode routes: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	for _, ep := range shown {
		writeRoute(cmd.OutOrStdout(), ep, analyzer.Eligible(ep, cfg))
	}
	printVerbose(cmd.OutOrStdout(), "%d of %d routes eligible", len(analyzer.Filter(endpoints, cfg)), len(endpoints))

	return nil
}

func writeRoute(w io.Writer, ep types.Endpoint, eligible bool) {
	name := ep.Name
	if name == "" {
		name = "-"
	}
	line := fmt.Sprintf("%s /%s  %s  %s",
		methodStyle.Render(strings.Join(ep.Methods, "|")),
		strings.TrimPrefix(ep.URI, "/"),
		name,
		ep.Handler,
	)
	if !eligible {
		line = skippedStyle.Render(line)
	}
	fmt.Fprintln(w, line)
}
