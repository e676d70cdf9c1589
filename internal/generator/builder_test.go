// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pestgen/pestgen/pkg/types"
)

func TestBuilder_Test(t *testing.T) {
	tc := types.TestCase{
		Name: "user can index",
		Body: []string{
			"$response = $this->get(route('posts.index'));",
			"$response->assertStatus(200);",
		},
	}

	expected := "test('user can index', function () {\n" +
		"    $response = $this->get(route('posts.index'));\n" +
		"    $response->assertStatus(200);\n" +
		"});\n"
	assert.Equal(t, expected, Builder{}.Test(tc))

	tc.Todo = true
	assert.Contains(t, Builder{Prefix: "it"}.Test(tc), "it('user can index'")
	assert.Contains(t, Builder{}.Test(tc), "})->todo();\n")
}

func TestBuilder_Test_EscapesQuotes(t *testing.T) {
	out := Builder{}.Test(types.TestCase{Name: "user's post"})
	assert.Equal(t, "test('user\\'s post', function () {\n});\n", out)
}

func TestBuilder_Test_EscapesBackslashes(t *testing.T) {
	out := Builder{}.Test(types.TestCase{Name: `user can see C:\ drive`})
	assert.Equal(t, "test('user can see C:\\\\ drive', function () {\n});\n", out)
}

func TestBuilder_Render(t *testing.T) {
	f := File{
		Uses:       []string{`App\Http\Controllers\PostController`, `App\Models\User`},
		Directives: []string{"uses(RefreshDatabase::class)"},
		Tests: []types.TestCase{
			{Name: "a", Body: []string{"expect(true)->toBeTrue();"}},
			{Name: "b", Body: []string{"expect(false)->toBeFalse();"}},
		},
	}

	expected := "<?php\n\n" +
		"use App\\Http\\Controllers\\PostController;\n" +
		"use App\\Models\\User;\n" +
		"\n" +
		"uses(RefreshDatabase::class);\n" +
		"\n" +
		"test('a', function () {\n" +
		"    expect(true)->toBeTrue();\n" +
		"});\n" +
		"\n" +
		"test('b', function () {\n" +
		"    expect(false)->toBeFalse();\n" +
		"});\n"
	assert.Equal(t, expected, Builder{}.Render(f))
}

func TestBuilder_Render_TrailingBlank(t *testing.T) {
	f := File{
		Uses:          []string{`App\Models\Post`},
		Tests:         []types.TestCase{{Name: "a"}, {Name: "b"}},
		TrailingBlank: true,
	}

	expected := "<?php\n\n" +
		"use App\\Models\\Post;\n" +
		"\n" +
		"test('a', function () {\n});\n\n" +
		"test('b', function () {\n});\n\n"
	assert.Equal(t, expected, Builder{}.Render(f))
}
