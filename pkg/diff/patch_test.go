package diff

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePatch_Basic(t *testing.T) {
	patch, err := CreatePatch("hello\nworld\n", "hello\nthere\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(patch, "--- Content"), "patch should start with the Content header")
	assert.Contains(t, patch, "+++ Content")
	assert.Contains(t, patch, "@@")
	assert.Contains(t, patch, "-world")
	assert.Contains(t, patch, "+there")
}

func TestCreatePatch_Deterministic(t *testing.T) {
	before := "line one\nline two\nline three\n"
	after := "line one\nline 2\nline three\nline four\n"

	first, err := CreatePatch(before, after)
	require.NoError(t, err)
	second, err := CreatePatch(before, after)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same inputs must produce byte-identical output")
}

// 验证任意输入下补丁生成的确定性与标记完整性
func TestCreatePatch_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("identical inputs always produce identical output", prop.ForAll(
		func(before, after string) bool {
			first, err := CreatePatch(before, after)
			if err != nil {
				return false
			}
			second, err := CreatePatch(before, after)
			if err != nil {
				return false
			}
			return first == second
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("equal inputs produce a headed patch with no hunks", prop.ForAll(
		func(content string) bool {
			patch, err := CreatePatch(content, content)
			return err == nil &&
				patch == "--- Content\n+++ Content\n" &&
				!strings.Contains(patch, "@@")
		},
		gen.AnyString(),
	))

	properties.Property("changed inputs produce a headed patch", prop.ForAll(
		func(before, after string) bool {
			if before == after {
				return true
			}
			patch, err := CreatePatch(before, after)
			if err != nil {
				return false
			}
			return strings.Contains(patch, "--- Content") &&
				strings.Contains(patch, "+++ Content") &&
				strings.Contains(patch, "@@")
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestCreatePatch_IdenticalInputs(t *testing.T) {
	patch, err := CreatePatch("same\ncontent\n", "same\ncontent\n")
	require.NoError(t, err)
	assert.Equal(t, "--- Content\n+++ Content\n", patch, "identical inputs produce a headed patch with no hunks")
	assert.NotContains(t, patch, "@@")
}

func TestCreatePatch_EmptyInputs(t *testing.T) {
	patch, err := CreatePatch("", "")
	require.NoError(t, err)
	assert.Equal(t, "--- Content\n+++ Content\n", patch)

	patch, err = CreatePatch("", "new content\n")
	require.NoError(t, err)
	assert.Contains(t, patch, "+new content")
}
