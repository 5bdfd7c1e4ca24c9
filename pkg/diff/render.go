package diff

import (
	"html"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderOptions controls the HTML rendering of a patch
// RenderOptions 控制补丁的 HTML 渲染方式
type RenderOptions struct {
	// WordLevel enables intra-line word highlighting
	// WordLevel 启用行内单词级高亮
	WordLevel bool
	// SideBySide renders two columns instead of a single inline column
	// SideBySide 渲染左右两栏而不是单栏
	SideBySide bool
}

// DefaultRenderOptions returns the default rendering options
// DefaultRenderOptions 返回默认渲染选项
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		WordLevel:  true,
		SideBySide: true,
	}
}

// RenderHTML converts unified-diff text into an HTML fragment
// RenderHTML 将统一差异文本转换为 HTML 片段
// An empty patch renders to an empty view, not an error
// 空补丁渲染为空视图，而不是错误
func RenderHTML(patch string, opts ...RenderOptions) string {
	opt := DefaultRenderOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	rows := parsePatchRows(patch)
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<table class="diff-table">`)
	for _, row := range rows {
		if opt.SideBySide {
			writeSideBySideRow(&b, row, opt.WordLevel)
		} else {
			writeInlineRow(&b, row, opt.WordLevel)
		}
	}
	b.WriteString(`</table>`)
	return b.String()
}

// rowKind classifies a rendered diff row
// rowKind 渲染差异行的类别
type rowKind int

const (
	rowContext rowKind = iota
	rowChange
	rowDelete
	rowInsert
	rowHunk
)

// diffRow is one paired line of the side-by-side view
// diffRow 左右对照视图中的一行
type diffRow struct {
	kind  rowKind
	left  string
	right string
}

// parsePatchRows walks unified-diff text and pairs removed lines with
// added lines inside each hunk
// parsePatchRows 遍历统一差异文本，在每个差异块内将删除行与新增行配对
func parsePatchRows(patch string) []diffRow {
	if strings.TrimSpace(patch) == "" {
		return nil
	}

	var rows []diffRow
	var dels, adds []string

	flush := func() {
		n := len(dels)
		if len(adds) > n {
			n = len(adds)
		}
		for i := 0; i < n; i++ {
			switch {
			case i < len(dels) && i < len(adds):
				rows = append(rows, diffRow{kind: rowChange, left: dels[i], right: adds[i]})
			case i < len(dels):
				rows = append(rows, diffRow{kind: rowDelete, left: dels[i]})
			default:
				rows = append(rows, diffRow{kind: rowInsert, right: adds[i]})
			}
		}
		dels = dels[:0]
		adds = adds[:0]
	}

	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			// file-list header is not rendered
			// 文件头部不参与渲染
		case strings.HasPrefix(line, "@@"):
			flush()
			rows = append(rows, diffRow{kind: rowHunk, left: line})
		case strings.HasPrefix(line, "-"):
			dels = append(dels, line[1:])
		case strings.HasPrefix(line, "+"):
			adds = append(adds, line[1:])
		case strings.HasPrefix(line, " "):
			flush()
			rows = append(rows, diffRow{kind: rowContext, left: line[1:], right: line[1:]})
		}
	}
	flush()
	return rows
}

// writeSideBySideRow renders one two-column table row
// writeSideBySideRow 渲染一行双栏表格
func writeSideBySideRow(b *strings.Builder, row diffRow, wordLevel bool) {
	switch row.kind {
	case rowHunk:
		b.WriteString(`<tr class="diff-hunk"><td colspan="2">`)
		b.WriteString(html.EscapeString(row.left))
		b.WriteString(`</td></tr>`)
	case rowContext:
		b.WriteString(`<tr><td class="diff-line">`)
		b.WriteString(html.EscapeString(row.left))
		b.WriteString(`</td><td class="diff-line">`)
		b.WriteString(html.EscapeString(row.right))
		b.WriteString(`</td></tr>`)
	case rowChange:
		left, right := row.left, row.right
		var leftHTML, rightHTML string
		if wordLevel {
			leftHTML, rightHTML = highlightPair(left, right)
		} else {
			leftHTML = html.EscapeString(left)
			rightHTML = html.EscapeString(right)
		}
		b.WriteString(`<tr><td class="diff-line diff-del">`)
		b.WriteString(leftHTML)
		b.WriteString(`</td><td class="diff-line diff-ins">`)
		b.WriteString(rightHTML)
		b.WriteString(`</td></tr>`)
	case rowDelete:
		b.WriteString(`<tr><td class="diff-line diff-del">`)
		b.WriteString(html.EscapeString(row.left))
		b.WriteString(`</td><td class="diff-line diff-empty"></td></tr>`)
	case rowInsert:
		b.WriteString(`<tr><td class="diff-line diff-empty"></td><td class="diff-line diff-ins">`)
		b.WriteString(html.EscapeString(row.right))
		b.WriteString(`</td></tr>`)
	}
}

// writeInlineRow renders one single-column table row
// writeInlineRow 渲染一行单栏表格
func writeInlineRow(b *strings.Builder, row diffRow, wordLevel bool) {
	switch row.kind {
	case rowHunk:
		b.WriteString(`<tr class="diff-hunk"><td>`)
		b.WriteString(html.EscapeString(row.left))
		b.WriteString(`</td></tr>`)
	case rowContext:
		b.WriteString(`<tr><td class="diff-line">`)
		b.WriteString(html.EscapeString(row.left))
		b.WriteString(`</td></tr>`)
	default:
		if row.kind == rowDelete || row.kind == rowChange {
			b.WriteString(`<tr><td class="diff-line diff-del">`)
			if wordLevel && row.kind == rowChange {
				left, _ := highlightPair(row.left, row.right)
				b.WriteString(left)
			} else {
				b.WriteString(html.EscapeString(row.left))
			}
			b.WriteString(`</td></tr>`)
		}
		if row.kind == rowInsert || row.kind == rowChange {
			b.WriteString(`<tr><td class="diff-line diff-ins">`)
			if wordLevel && row.kind == rowChange {
				_, right := highlightPair(row.left, row.right)
				b.WriteString(right)
			} else {
				b.WriteString(html.EscapeString(row.right))
			}
			b.WriteString(`</td></tr>`)
		}
	}
}

// highlightPair computes word-level spans for a removed/added line pair
// highlightPair 为删除/新增行对计算单词级高亮片段
func highlightPair(left, right string) (string, string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(left, right, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var lb, rb strings.Builder
	for _, d := range diffs {
		escaped := html.EscapeString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			lb.WriteString(escaped)
			rb.WriteString(escaped)
		case diffmatchpatch.DiffDelete:
			lb.WriteString(`<span class="diff-word-del">`)
			lb.WriteString(escaped)
			lb.WriteString(`</span>`)
		case diffmatchpatch.DiffInsert:
			rb.WriteString(`<span class="diff-word-ins">`)
			rb.WriteString(escaped)
			rb.WriteString(`</span>`)
		}
	}
	return lb.String(), rb.String()
}
