// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pestgen/pestgen/internal/phpindex"
	"github.com/pestgen/pestgen/pkg/types"
)

const showSource = `<?php

class PostController
{
    public function show(Post $post)
    {
        return view('posts.show');
    }
}
`

func TestIntrospector_Introspect(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/app/PostController.php", []byte(showSource), 0o644))

	fake := newFakeResolver()
	ref := types.HandlerRef{Class: postController, Action: "show"}
	fake.params[ref.String()] = []types.ParameterInfo{{Name: "post", Type: `App\Models\Post`}}
	fake.spans[ref.String()] = phpindex.SourceSpan{File: "/app/PostController.php", Start: 5, End: 8}

	intro := NewIntrospector(fake, fake, fsys, nil).Introspect(ref)

	assert.NoError(t, intro.ParamErr)
	assert.NoError(t, intro.SourceErr)
	assert.Equal(t, fake.params[ref.String()], intro.Parameters)
	assert.True(t, intro.HasSource)
	assert.Equal(t, "    public function show(Post $post)\n    {\n        return view('posts.show');\n    }", intro.Source)
}

func TestIntrospector_DegradesIndependently(t *testing.T) {
	fsys := afero.NewMemMapFs()
	fake := newFakeResolver()

	withParams := types.HandlerRef{Class: postController, Action: "index"}
	fake.params[withParams.String()] = []types.ParameterInfo{{Name: "page", Type: "int", Builtin: true}}
	fake.spans[withParams.String()] = phpindex.SourceSpan{File: "/missing.php", Start: 1, End: 2}

	intro := NewIntrospector(fake, fake, fsys, nil).Introspect(withParams)
	assert.Len(t, intro.Parameters, 1)
	assert.False(t, intro.HasSource)
	assert.Error(t, intro.SourceErr)

	require.NoError(t, afero.WriteFile(fsys, "/app/X.php", []byte(showSource), 0o644))
	withSource := types.HandlerRef{Class: `App\X`, Action: "show"}
	fake.spans[withSource.String()] = phpindex.SourceSpan{File: "/app/X.php", Start: 7, End: 7}

	intro = NewIntrospector(fake, fake, fsys, nil).Introspect(withSource)
	assert.Empty(t, intro.Parameters)
	assert.ErrorIs(t, intro.ParamErr, phpindex.ErrClassNotFound)
	assert.True(t, intro.HasSource)
	assert.Equal(t, "        return view('posts.show');", intro.Source)
}

func TestIntrospector_NilCollaborators(t *testing.T) {
	intro := NewIntrospector(nil, nil, nil, nil).Introspect(types.HandlerRef{Inline: true})

	assert.Empty(t, intro.Parameters)
	assert.False(t, intro.HasSource)
}

func TestSliceLines(t *testing.T) {
	content := "a\nb\nc\nd"

	tests := []struct {
		name     string
		start    int
		end      int
		expected string
		wantErr  bool
	}{
		{"single line", 2, 2, "b", false},
		{"range", 2, 3, "b\nc", false},
		{"whole file", 1, 4, content, false},
		{"end clamped", 3, 10, "c\nd", false},
		{"zero start", 0, 2, "", true},
		{"start past end of file", 5, 6, "", true},
		{"reversed", 3, 2, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SliceLines(content, tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSpan)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
