package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML_EmptyPatch(t *testing.T) {
	assert.Empty(t, RenderHTML(""))
	assert.Empty(t, RenderHTML("   \n"))

	// 无差异块的补丁同样渲染为空视图
	patch, err := CreatePatch("same\n", "same\n")
	require.NoError(t, err)
	assert.Empty(t, RenderHTML(patch))
}

func TestRenderHTML_SideBySide(t *testing.T) {
	patch, err := CreatePatch("hello world\ncontext\n", "hello there\ncontext\n")
	require.NoError(t, err)

	out := RenderHTML(patch)

	assert.Contains(t, out, `<table class="diff-table">`)
	assert.Contains(t, out, `diff-del`)
	assert.Contains(t, out, `diff-ins`)
	// word-level highlighting wraps only the changed word
	// 单词级高亮只包裹变化的单词
	assert.Contains(t, out, `<span class="diff-word-del">`)
	assert.Contains(t, out, `<span class="diff-word-ins">`)
	// the file-list header never appears in the rendering
	// 文件头部不会出现在渲染结果中
	assert.NotContains(t, out, "+++ Content")
}

func TestRenderHTML_Deterministic(t *testing.T) {
	patch, err := CreatePatch("a\nb\nc\n", "a\nx\nc\n")
	require.NoError(t, err)

	assert.Equal(t, RenderHTML(patch), RenderHTML(patch))
}

func TestRenderHTML_EscapesMarkup(t *testing.T) {
	patch, err := CreatePatch("<script>alert(1)</script>\n", "<b>safe</b>\n")
	require.NoError(t, err)

	out := RenderHTML(patch)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;")
}

func TestRenderHTML_Inline(t *testing.T) {
	patch, err := CreatePatch("one\n", "two\n")
	require.NoError(t, err)

	out := RenderHTML(patch, RenderOptions{WordLevel: false, SideBySide: false})
	assert.Contains(t, out, "diff-del")
	assert.Contains(t, out, "diff-ins")
	assert.NotContains(t, out, "diff-word-del")
}

func TestRenderHTML_UnpairedLines(t *testing.T) {
	// pure insertion produces an empty left cell
	// 纯新增行产生空的左侧单元格
	patch, err := CreatePatch("a\n", "a\nb\nc\n")
	require.NoError(t, err)

	out := RenderHTML(patch)
	assert.True(t, strings.Contains(out, "diff-empty"))
}
