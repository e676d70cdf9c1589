// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pestgen/pestgen/internal/config"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch for file changes and generate tests for new routes",
	Long: `Watch for changes to routes and controllers and generate tests for new
endpoints as they appear.

Existing test files are never touched, so only controllers without a test
file get one. The watched paths default to watch.paths from the config.

Example:
  pestgen watch                           # Watch routes and app/Http
  pestgen watch routes app                # Watch specific paths
  pestgen watch --debounce 1000           # Wait 1s before regenerating`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: watch.debounce)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Watch.Paths
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := addRecursive(watcher, cfg.Resolve(p)); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printInfo(cmd.OutOrStdout(), "Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	regenerate := func() {
		res, err := generate(ctx, cfg, newFs(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			printError(cmd.ErrOrStderr(), "%v", err)
			return
		}
		report(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, false)
	}

	regenerate()
	return watchLoop(ctx, watcher, debounceDuration(cfg), regenerate, func(err error) {
		printError(cmd.ErrOrStderr(), "watch: %v", err)
	})
}

// watchLoop calls fn once per burst of relevant events until ctx is done.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, fn func(), onError func(error)) error {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			if !relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			fn()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(err)
		}
	}
}

// relevant reports whether an event can change the generated tests.
func relevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".php" {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func debounceDuration(cfg *config.Config) time.Duration {
	if cfg.Watch.Debounce <= 0 {
		return 0
	}
	return time.Duration(cfg.Watch.Debounce) * time.Millisecond
}

// addRecursive watches dir and every directory below it. fsnotify does
// not watch recursively.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name == "vendor" || name == "node_modules" {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
