package diff

import (
	"reflect"
	"sort"
)

// Snapshot is a decoded page metadata object
// Snapshot 解码后的页面元数据对象
type Snapshot map[string]any

// FieldChange describes a single human-labeled metadata difference
// FieldChange 描述单个带人类可读标签的元数据差异
type FieldChange struct {
	Label    string `json:"label"`
	Previous any    `json:"previous"`
	Current  any    `json:"current"`
}

// skipFields bookkeeping fields never surfaced as differences
// skipFields 永远不会作为差异呈现的簿记字段
var skipFields = map[string]struct{}{
	"publishedAt":    {},
	"updatedAt":      {},
	"authorId":       {},
	"contributorIds": {},
}

// fieldLabels maps raw metadata keys to display labels
// fieldLabels 将原始元数据键映射为展示标签
// Unmapped keys pass through as their raw name
// 未映射的键原样透传
var fieldLabels = map[string]string{
	"slug":        "Page Slug",
	"title":       "Page Title",
	"description": "Page Description",
	"status":      "Page Status",
	"tags":        "Page Tags",
	"parentId":    "Parent Page",
	"template":    "Page Template",
}

// FieldLabel returns the display label for a raw metadata key
// FieldLabel 返回原始元数据键对应的展示标签
func FieldLabel(key string) string {
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	return key
}

// Changes compares two metadata snapshots and returns labeled differences
// Changes 比对两个元数据快照并返回带标签的差异列表
// Only fields present in before are examined, fields introduced in after
// are not surfaced
// 只检查 before 中存在的字段，after 中新增的字段不会被呈现
// Differences are returned in sorted field-name order for determinism
// 差异按字段名排序返回以保证确定性
func Changes(before, after Snapshot) []FieldChange {
	keys := make([]string, 0, len(before))
	for k := range before {
		if _, skip := skipFields[k]; skip {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	changes := make([]FieldChange, 0)
	for _, k := range keys {
		av, ok := after[k]
		if !ok {
			continue
		}
		bv := before[k]
		if equalValues(bv, av) {
			continue
		}
		changes = append(changes, FieldChange{
			Label:    FieldLabel(k),
			Previous: bv,
			Current:  av,
		})
	}
	return changes
}

// equalValues compares two decoded JSON values
// equalValues 比较两个解码后的 JSON 值
// Arrays are equal only with the same length and element order,
// reordered arrays are still reported as different
// 数组只有长度与元素顺序都一致才算相等，乱序数组仍然视为差异
func equalValues(a, b any) bool {
	as, aok := a.([]any)
	bs, bok := b.([]any)
	if aok && bok {
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equalValues(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}
