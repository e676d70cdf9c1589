// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package routes

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/pkg/types"
)

const routeListJSON = `[
    {
        "domain": null,
        "method": "GET|HEAD",
        "uri": "posts/{post}",
        "name": "posts.show",
        "action": "App\\Http\\Controllers\\PostController@show",
        "middleware": ["web"]
    },
    {
        "domain": null,
        "method": "PATCH",
        "uri": "profile",
        "name": "profile.update",
        "action": "App\\Http\\Controllers\\ProfileController@update",
        "middleware": "web\nauth"
    },
    {
        "domain": "admin.example.com",
        "method": "GET|HEAD",
        "uri": "/",
        "name": null,
        "action": "Closure",
        "middleware": []
    }
]`

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ProjectRoot = "/project"
	return cfg
}

func TestParseRouteList(t *testing.T) {
	endpoints, err := ParseRouteList([]byte(routeListJSON))
	require.NoError(t, err)
	require.Len(t, endpoints, 3)

	assert.Equal(t, types.Endpoint{
		Name:       "posts.show",
		URI:        "posts/{post}",
		Methods:    []string{"GET", "HEAD"},
		Handler:    types.HandlerRef{Class: `App\Http\Controllers\PostController`, Action: "show"},
		Middleware: []string{"web"},
		Parameters: []string{"post"},
	}, endpoints[0])

	assert.Equal(t, []string{"web", "auth"}, endpoints[1].Middleware)
	assert.Equal(t, "PATCH", endpoints[1].Method())

	assert.Equal(t, "", endpoints[2].Name)
	assert.Equal(t, "/", endpoints[2].URI)
	assert.True(t, endpoints[2].Handler.Inline)
	assert.Equal(t, "admin.example.com", endpoints[2].Domain)
}

func TestParseRouteList_LeadingNoise(t *testing.T) {
	endpoints, err := ParseRouteList([]byte("Deprecated: something\n" + routeListJSON))
	require.NoError(t, err)
	assert.Len(t, endpoints, 3)
}

func TestParseRouteList_BracketedWarnings(t *testing.T) {
	tests := map[string]string{
		"warning":       "[WARNING] something deprecated\n",
		"info and warn": "[INFO] Using cached routes.\n[WARNING] Xdebug: could not connect\n",
		"bracket pair":  "PHP Warning: [a] and [b] in Unknown on line 0\n",
	}

	for name, prefix := range tests {
		t.Run(name, func(t *testing.T) {
			endpoints, err := ParseRouteList([]byte(prefix + routeListJSON))
			require.NoError(t, err)
			require.Len(t, endpoints, 3)
			assert.Equal(t, "posts.show", endpoints[0].Name)
		})
	}
}

func TestParseRouteList_EmptyAfterWarning(t *testing.T) {
	endpoints, err := ParseRouteList([]byte("[WARNING] no routes\n[]"))
	require.NoError(t, err)
	assert.Empty(t, endpoints)
}

func TestParseRouteList_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":        "   ",
		"truncated":    `[{"uri": "x"`,
		"not array":    `{"uri": "x"}`,
		"warning only": "[WARNING] route cache is stale",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRouteList([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestArtisan_Endpoints(t *testing.T) {
	src, err := NewArtisan(Options{Config: testConfig()})
	require.NoError(t, err)

	artisan := src.(*Artisan)
	var gotDir, gotName string
	var gotArgs []string
	artisan.run = func(_ context.Context, dir, name string, args ...string) ([]byte, error) {
		gotDir, gotName, gotArgs = dir, name, args
		return []byte(routeListJSON), nil
	}

	endpoints, err := artisan.Endpoints(context.Background())
	require.NoError(t, err)
	assert.Len(t, endpoints, 3)
	assert.Equal(t, "/project", gotDir)
	assert.Equal(t, "php", gotName)
	assert.Equal(t, []string{"artisan", "route:list", "--json"}, gotArgs)
}

func TestArtisan_Endpoints_CommandFails(t *testing.T) {
	src, err := NewArtisan(Options{Config: testConfig()})
	require.NoError(t, err)

	artisan := src.(*Artisan)
	artisan.run = func(context.Context, string, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1: Could not open input file: artisan")
	}

	_, err = artisan.Endpoints(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route:list")
}

func TestManifest_Endpoints(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/project/storage/routes.json", []byte(routeListJSON), 0o644))

	cfg := testConfig()
	cfg.Routes.Manifest = "storage/routes.json"

	src, err := NewManifest(Options{Fs: fsys, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "manifest", src.Name())

	endpoints, err := src.Endpoints(context.Background())
	require.NoError(t, err)
	assert.Len(t, endpoints, 3)
}

func TestManifest_Errors(t *testing.T) {
	_, err := NewManifest(Options{Config: testConfig()})
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Routes.Manifest = "missing.json"
	src, err := NewManifest(Options{Fs: afero.NewMemMapFs(), Config: cfg})
	require.NoError(t, err)

	_, err = src.Endpoints(context.Background())
	assert.Error(t, err)
}

func TestStatic_Endpoints(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/project/routes/web.php", []byte(`<?php

use App\Http\Controllers\PostController;
use Illuminate\Support\Facades\Route;

Route::get('/posts/{post}', [PostController::class, 'show'])->name('posts.show');
`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/project/routes/api.php", []byte(`<?php

use App\Http\Controllers\Api\TokenController;

Route::middleware('auth:sanctum')->post('/tokens', [TokenController::class, 'store']);
`), 0o644))

	src, err := NewStatic(Options{Fs: fsys, Config: testConfig()})
	require.NoError(t, err)

	endpoints, err := src.Endpoints(context.Background())
	require.NoError(t, err)
	require.Len(t, endpoints, 2)

	assert.Equal(t, types.Endpoint{
		Name:       "posts.show",
		URI:        "posts/{post}",
		Methods:    []string{"GET", "HEAD"},
		Handler:    types.HandlerRef{Class: `App\Http\Controllers\PostController`, Action: "show"},
		Middleware: []string{"web"},
		Parameters: []string{"post"},
		SourceFile: "routes/web.php",
		SourceLine: 6,
	}, endpoints[0])

	assert.Equal(t, "api/tokens", endpoints[1].URI)
	assert.Equal(t, []string{"api", "auth:sanctum"}, endpoints[1].Middleware)
	assert.Equal(t, `App\Http\Controllers\Api\TokenController`, endpoints[1].Handler.Class)
}

func TestDetect(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.False(t, Detect(fsys, "/app"))

	require.NoError(t, afero.WriteFile(fsys, "/app/composer.json", []byte(`{"require": {"laravel/framework": "^11.0"}}`), 0o644))
	assert.True(t, Detect(fsys, "/app"))
	assert.Equal(t, "^11.0", FrameworkVersion(fsys, "/app"))

	require.NoError(t, afero.WriteFile(fsys, "/other/artisan", []byte("#!/usr/bin/env php"), 0o755))
	assert.True(t, Detect(fsys, "/other"))
	assert.Equal(t, "", FrameworkVersion(fsys, "/other"))
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.True(t, r.Has("artisan"))
	assert.True(t, r.Has("manifest"))
	assert.True(t, r.Has("static"))

	names := make([]string, 0)
	for _, info := range r.List() {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"artisan", "manifest", "static"}, names)

	src, err := r.Open("static", Options{Config: testConfig()})
	require.NoError(t, err)
	assert.Equal(t, "static", src.Name())

	_, err = r.Open("unknown", Options{Config: testConfig()})
	assert.Error(t, err)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(SourceInfo{Name: "custom"}, NewStatic))
	assert.Error(t, r.Register(SourceInfo{Name: "custom"}, NewStatic))
	assert.Error(t, r.Register(SourceInfo{Name: ""}, NewStatic))
	assert.Error(t, r.Register(SourceInfo{Name: "nil"}, nil))
	assert.Panics(t, func() { r.MustRegister(SourceInfo{Name: "custom"}, NewStatic) })
}
