// Package diff provides patch generation, metadata comparison and HTML rendering
// Package diff 提供补丁生成、元数据比对和 HTML 渲染
package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// ContentLabel is the fixed header label used on both sides of a patch
// ContentLabel 补丁两侧使用的固定头部标签
// The label is cosmetic, downstream consumers never parse it
// 该标签仅用于展示，下游不会解析它
const ContentLabel = "Content"

// patchContextLines number of context lines around each hunk
// patchContextLines 每个差异块周围的上下文行数
const patchContextLines = 3

// CreatePatch produces a unified-diff text comparing before to after
// CreatePatch 生成 before 与 after 之间的统一差异文本
// Deterministic: identical inputs always produce byte-identical output
// 确定性：相同输入总是产生字节级一致的输出
// Identical inputs produce a headed patch with no hunks, not an error
// 相同内容产生只含头部、无差异块的补丁，而不是错误
func CreatePatch(before, after string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: ContentLabel,
		ToFile:   ContentLabel,
		Context:  patchContextLines,
	}
	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", err
	}
	// difflib 在无差异时不输出头部
	if out == "" {
		out = fmt.Sprintf("--- %s\n+++ %s\n", ContentLabel, ContentLabel)
	}
	return out, nil
}
