// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package phpindex

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/pkg/types"
)

const projectRoot = "/project"

var fixtures = map[string]string{
	"composer.json": `{
    "name": "laravel/laravel",
    "autoload": {
        "psr-4": {
            "App\\": "app/",
            "Database\\Factories\\": "database/factories/"
        }
    },
    "autoload-dev": {
        "psr-4": {"Tests\\": "tests/"}
    }
}`,
	"app/Http/Controllers/Controller.php": `<?php

namespace App\Http\Controllers;

abstract class Controller
{
    public function respond()
    {
        return view('base');
    }
}
`,
	"app/Http/Controllers/PostController.php": `<?php

namespace App\Http\Controllers;

use App\Models\Post;

class PostController extends Controller
{
    public function show(Post $post, int $page, $raw, string|int $mixed)
    {
        return view('posts.show', compact('post'));
    }
}
`,
	"app/Http/Controllers/ProfileController.php": `<?php

namespace App\Http\Controllers;

use App\Http\Requests\ProfileUpdateRequest;

class ProfileController extends Controller
{
    public function update(ProfileUpdateRequest $request)
    {
        return back();
    }
}
`,
	"app/Http/Requests/ProfileUpdateRequest.php": `<?php

namespace App\Http\Requests;

class ProfileUpdateRequest extends BaseRequest
{
}
`,
	"app/Http/Requests/BaseRequest.php": `<?php

namespace App\Http\Requests;

use Illuminate\Foundation\Http\FormRequest;

class BaseRequest extends FormRequest
{
}
`,
	"app/Models/Post.php": `<?php

namespace App\Models;

use Illuminate\Database\Eloquent\Factories\HasFactory;
use Illuminate\Database\Eloquent\Model;

class Post extends Model
{
    use HasFactory;
}
`,
	"app/Models/Admin.php": `<?php

namespace App\Models;

class Admin extends Post
{
}
`,
	"app/Models/Setting.php": `<?php

namespace App\Models;

use Illuminate\Database\Eloquent\Model;

class Setting extends Model
{
}
`,
	"app/Models/Legacy/Audit.php": `<?php

namespace App\Models\Legacy;

class Audit
{
    public static function factory()
    {
    }
}
`,
	"app/Cycle/A.php": "<?php\n\nnamespace App\\Cycle;\n\nclass A extends B {}\n",
	"app/Cycle/B.php": "<?php\n\nnamespace App\\Cycle;\n\nclass B extends A {}\n",
}

func setupProject(t *testing.T) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range fixtures {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(projectRoot, path), []byte(content), 0o644))
	}
	return fsys
}

func buildIndex(t *testing.T) *Index {
	t.Helper()

	cfg := config.Default()
	cfg.ProjectRoot = projectRoot

	ix, err := Build(setupProject(t), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(ix.Close)
	return ix
}

func ref(class, action string) types.HandlerRef {
	return types.HandlerRef{Class: class, Action: action}
}

func TestBuild_IndexesSources(t *testing.T) {
	ix := buildIndex(t)

	assert.Equal(t, 11, ix.Len())
	assert.True(t, ix.ClassExists(`App\Models\Post`))
	assert.True(t, ix.ClassExists(`\App\Models\Post`))
	assert.True(t, ix.ClassExists(`app\models\post`))
	assert.False(t, ix.ClassExists(`App\Models\Missing`))
}

func TestIndex_ResolveParameters(t *testing.T) {
	ix := buildIndex(t)

	params, err := ix.ResolveParameters(ref(`App\Http\Controllers\PostController`, "show"))
	require.NoError(t, err)

	assert.Equal(t, []types.ParameterInfo{
		{Name: "post", Type: `App\Models\Post`, Builtin: false},
		{Name: "page", Type: "int", Builtin: true},
		{Name: "raw", Type: "", Builtin: true},
		{Name: "mixed", Type: "string|int", Builtin: true},
	}, params)
}

func TestIndex_ResolveParameters_Errors(t *testing.T) {
	ix := buildIndex(t)

	_, err := ix.ResolveParameters(ref(`App\Http\Controllers\MissingController`, "index"))
	assert.ErrorIs(t, err, ErrClassNotFound)

	_, err = ix.ResolveParameters(ref(`App\Http\Controllers\PostController`, "destroy"))
	assert.ErrorIs(t, err, ErrMethodNotFound)

	_, err = ix.ResolveParameters(types.HandlerRef{Inline: true})
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestIndex_LocateMethod(t *testing.T) {
	ix := buildIndex(t)

	span, err := ix.LocateMethod(ref(`App\Http\Controllers\PostController`, "show"))
	require.NoError(t, err)
	assert.Equal(t, SourceSpan{
		File:  filepath.Join(projectRoot, "app/Http/Controllers/PostController.php"),
		Start: 9,
		End:   12,
	}, span)

	inherited, err := ix.LocateMethod(ref(`App\Http\Controllers\PostController`, "respond"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(projectRoot, "app/Http/Controllers/Controller.php"), inherited.File)
	assert.Equal(t, 7, inherited.Start)
}

func TestIndex_IsSubtypeOf(t *testing.T) {
	ix := buildIndex(t)
	formRequest := `Illuminate\Foundation\Http\FormRequest`

	tests := []struct {
		name     string
		typ      string
		base     string
		expected bool
	}{
		{"direct parent outside index", `App\Http\Requests\BaseRequest`, formRequest, true},
		{"grandparent", `App\Http\Requests\ProfileUpdateRequest`, formRequest, true},
		{"leading separator on base", `App\Http\Requests\ProfileUpdateRequest`, `\` + formRequest, true},
		{"indexed ancestor", `App\Models\Admin`, `App\Models\Post`, true},
		{"not a subtype of itself", `App\Models\Post`, `App\Models\Post`, false},
		{"unrelated", `App\Models\Post`, formRequest, false},
		{"unknown class", `App\Missing`, formRequest, false},
		{"cycle terminates", `App\Cycle\A`, formRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ix.IsSubtypeOf(tt.typ, tt.base))
		})
	}
}

func TestIndex_ResolveClass(t *testing.T) {
	ix := buildIndex(t)

	tests := []struct {
		fqcn    string
		factory bool
	}{
		{`App\Models\Post`, true},
		{`App\Models\Admin`, true},
		{`App\Models\Setting`, false},
		{`App\Models\Legacy\Audit`, true},
	}

	for _, tt := range tests {
		t.Run(tt.fqcn, func(t *testing.T) {
			info, err := ix.ResolveClass(tt.fqcn)
			require.NoError(t, err)
			assert.Equal(t, tt.fqcn, info.FQCN)
			assert.Equal(t, tt.factory, info.HasFactory)
		})
	}

	_, err := ix.ResolveClass(`App\Models\Ghost`)
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestIndex_LazyAutoload(t *testing.T) {
	fsys := setupProject(t)
	autoload, err := LoadAutoload(fsys, projectRoot)
	require.NoError(t, err)

	ix := New(fsys, projectRoot, nil)
	t.Cleanup(ix.Close)
	ix.SetAutoload(autoload)

	assert.Equal(t, 0, ix.Len())
	assert.True(t, ix.ClassExists(`App\Models\Post`))
	assert.Equal(t, 1, ix.Len())
	assert.False(t, ix.ClassExists(`App\Models\Ghost`))
}

func TestModelCandidates(t *testing.T) {
	fsys := setupProject(t)

	names, err := ModelCandidates(fsys, filepath.Join(projectRoot, "app/Models"), `App\Models`)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		`App\Models\Admin`,
		`App\Models\Post`,
		`App\Models\Setting`,
		`App\Models\Audit`,
	}, names)

	missing, err := ModelCandidates(fsys, "/nowhere", `App\Models\`)
	require.NoError(t, err)
	assert.Empty(t, missing)
}
