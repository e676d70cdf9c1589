// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package routes

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/pestgen/pestgen/pkg/types"
)

// commandRunner runs a command in dir and returns its standard output.
type commandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Artisan reads the route table from the application's router.
type Artisan struct {
	root   string
	php    string
	run    commandRunner
	logger *zap.Logger
}

// NewArtisan creates an artisan source for the configured project.
func NewArtisan(opts Options) (Source, error) {
	php := opts.Config.Routes.PHPBinary
	if php == "" {
		php = "php"
	}
	return &Artisan{
		root:   opts.Config.ProjectRoot,
		php:    php,
		run:    execRunner,
		logger: opts.logger(),
	}, nil
}

// Name returns the source identifier.
func (a *Artisan) Name() string {
	return "artisan"
}

// Endpoints runs route:list and decodes its output.
func (a *Artisan) Endpoints(ctx context.Context) ([]types.Endpoint, error) {
	args := []string{"artisan", "route:list", "--json"}
	a.logger.Debug("running artisan", zap.String("php", a.php), zap.String("dir", a.root), zap.Strings("args", args))

	out, err := a.run(ctx, a.root, a.php, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run artisan route:list: %w", err)
	}

	endpoints, err := ParseRouteList(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artisan route:list: %w", err)
	}
	return endpoints, nil
}
