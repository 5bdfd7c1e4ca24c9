package dao

import (
	"context"
	"testing"

	"github.com/haierkeys/page-revision-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRepository_CRUD(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Page{
		RecordID: "page-1",
		Content:  "hello",
		Metadata: `{"id":"page-1","title":"Hello"}`,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByRecordID(ctx, "page-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.Content)

	updated, err := repo.Update(ctx, &domain.Page{
		RecordID: "page-1",
		Content:  "hello world",
		Metadata: `{"id":"page-1","title":"Hello World"}`,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "hello world", updated.Content)

	count, err := repo.ListCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	list, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, "page-1"))

	missing, err := repo.GetByRecordID(ctx, "page-1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
