package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanges_BlacklistIgnored(t *testing.T) {
	before := Snapshot{"title": "A", "updatedAt": "t1"}
	after := Snapshot{"title": "B", "updatedAt": "t2"}

	changes := Changes(before, after)

	require.Len(t, changes, 1)
	assert.Equal(t, "Page Title", changes[0].Label)
	assert.Equal(t, "A", changes[0].Previous)
	assert.Equal(t, "B", changes[0].Current)
}

func TestChanges_AllBookkeepingFieldsSkipped(t *testing.T) {
	before := Snapshot{
		"publishedAt":    "2024-01-01",
		"updatedAt":      "2024-01-01",
		"authorId":       "u1",
		"contributorIds": []any{"u1", "u2"},
	}
	after := Snapshot{
		"publishedAt":    "2024-06-01",
		"updatedAt":      "2024-06-01",
		"authorId":       "u9",
		"contributorIds": []any{"u9"},
	}

	assert.Empty(t, Changes(before, after))
}

func TestChanges_LabelDictionary(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		wantLabel string
	}{
		{name: "slug is mapped", field: "slug", wantLabel: "Page Slug"},
		{name: "title is mapped", field: "title", wantLabel: "Page Title"},
		{name: "unknown key passes through", field: "customField", wantLabel: "customField"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := Changes(Snapshot{tt.field: "x"}, Snapshot{tt.field: "y"})
			require.Len(t, changes, 1)
			assert.Equal(t, tt.wantLabel, changes[0].Label)
		})
	}
}

func TestChanges_ArrayEquality(t *testing.T) {
	// distinct instances with the same order suppress the difference
	// 顺序一致的不同实例不产生差异
	same := Changes(
		Snapshot{"tags": []any{float64(1), float64(2), float64(3)}},
		Snapshot{"tags": []any{float64(1), float64(2), float64(3)}},
	)
	assert.Empty(t, same)

	// reordered arrays are reported as different
	// 乱序数组仍然视为差异
	reordered := Changes(
		Snapshot{"tags": []any{float64(1), float64(2), float64(3)}},
		Snapshot{"tags": []any{float64(3), float64(2), float64(1)}},
	)
	require.Len(t, reordered, 1)
	assert.Equal(t, "Page Tags", reordered[0].Label)

	shorter := Changes(
		Snapshot{"tags": []any{"a", "b"}},
		Snapshot{"tags": []any{"a"}},
	)
	assert.Len(t, shorter, 1)
}

func TestChanges_FieldsOnlyInAfterNotSurfaced(t *testing.T) {
	before := Snapshot{"title": "A"}
	after := Snapshot{"title": "A", "slug": "new-slug"}

	assert.Empty(t, Changes(before, after))
}

func TestChanges_FieldMissingInAfterSkipped(t *testing.T) {
	before := Snapshot{"title": "A", "slug": "old-slug"}
	after := Snapshot{"title": "A"}

	assert.Empty(t, Changes(before, after))
}

func TestChanges_DeterministicOrder(t *testing.T) {
	before := Snapshot{"title": "A", "slug": "s1", "description": "d1"}
	after := Snapshot{"title": "B", "slug": "s2", "description": "d2"}

	changes := Changes(before, after)
	require.Len(t, changes, 3)
	assert.Equal(t, "Page Description", changes[0].Label)
	assert.Equal(t, "Page Slug", changes[1].Label)
	assert.Equal(t, "Page Title", changes[2].Label)
}
