package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/haierkeys/page-revision-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:        "sqlite",
		Path:        ":memory:",
		AutoMigrate: true,
		// 单连接，避免每个 :memory: 连接各自持有独立数据库
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)

	return New(db, context.Background())
}

func newTestDiff(recordID, actorID string, n int) *domain.PageDiff {
	return &domain.PageDiff{
		DiffID:                fmt.Sprintf("%s-diff-%d", recordID, n),
		RecordID:              recordID,
		ActorID:               actorID,
		Patch:                 fmt.Sprintf("--- Content\n+++ Content\n@@ -1 +1 @@\n-v%d\n+v%d\n", n, n+1),
		ContentSnapshotBefore: fmt.Sprintf("v%d", n),
		MetadataSnapshot:      `{"before":{"id":"` + recordID + `"},"after":{"id":"` + recordID + `"}}`,
		CreatedAt:             time.Date(2024, 1, 1, 0, 0, n, 0, time.UTC),
	}
}

func TestPageDiffRepository_CreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageDiffRepository(d)
	ctx := context.Background()

	created, err := repo.CreateWithRetention(ctx, newTestDiff("page-1", "actor-1", 1), 0)
	require.NoError(t, err)
	assert.NotZero(t, created.Seq)

	got, err := repo.GetByDiffID(ctx, created.DiffID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.DiffID, got.DiffID)
	assert.Equal(t, "page-1", got.RecordID)
	assert.Equal(t, "actor-1", got.ActorID)

	// 不存在的差异返回 nil
	missing, err := repo.GetByDiffID(ctx, "no-such-diff")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPageDiffRepository_DuplicateDiffID(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageDiffRepository(d)
	ctx := context.Background()

	diff := newTestDiff("page-1", "actor-1", 1)
	_, err := repo.CreateWithRetention(ctx, diff, 0)
	require.NoError(t, err)

	// 相同 diff_id 再次插入必须失败
	dup := newTestDiff("page-1", "actor-1", 1)
	_, err = repo.CreateWithRetention(ctx, dup, 0)
	assert.Error(t, err)

	count, err := repo.CountByRecord(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPageDiffRepository_DeleteByDiffIDIdempotent(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageDiffRepository(d)
	ctx := context.Background()

	created, err := repo.CreateWithRetention(ctx, newTestDiff("page-1", "actor-1", 1), 0)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByDiffID(ctx, created.DiffID))
	// 再次删除同一 ID 静默成功
	require.NoError(t, repo.DeleteByDiffID(ctx, created.DiffID))
	// 从不存在的 ID 删除也静默成功
	require.NoError(t, repo.DeleteByDiffID(ctx, "no-such-diff"))
}

func TestPageDiffRepository_ListOrdering(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageDiffRepository(d)
	ctx := context.Background()

	// 倒序插入，验证列表按创建时间升序返回
	for _, n := range []int{3, 1, 2} {
		_, err := repo.CreateWithRetention(ctx, newTestDiff("page-1", "actor-1", n), 0)
		require.NoError(t, err)
	}
	_, err := repo.CreateWithRetention(ctx, newTestDiff("page-2", "actor-1", 9), 0)
	require.NoError(t, err)

	list, err := repo.ListByRecord(ctx, "page-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "page-1-diff-1", list[0].DiffID)
	assert.Equal(t, "page-1-diff-2", list[1].DiffID)
	assert.Equal(t, "page-1-diff-3", list[2].DiffID)

	byActor, err := repo.ListByActor(ctx, "actor-1")
	require.NoError(t, err)
	require.Len(t, byActor, 4)
	for i := 1; i < len(byActor); i++ {
		assert.False(t, byActor[i].CreatedAt.Before(byActor[i-1].CreatedAt))
	}
}

func TestPageDiffRepository_RetentionOnInsert(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageDiffRepository(d)
	ctx := context.Background()

	// maxDiffs=3，插入 5 条后只保留最新的 3 条
	for n := 1; n <= 5; n++ {
		_, err := repo.CreateWithRetention(ctx, newTestDiff("page-1", "actor-1", n), 3)
		require.NoError(t, err)
	}

	list, err := repo.ListByRecord(ctx, "page-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "page-1-diff-3", list[0].DiffID)
	assert.Equal(t, "page-1-diff-4", list[1].DiffID)
	assert.Equal(t, "page-1-diff-5", list[2].DiffID)
}

func TestPageDiffRepository_EnforceRetention(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageDiffRepository(d)
	ctx := context.Background()

	for n := 1; n <= 5; n++ {
		_, err := repo.CreateWithRetention(ctx, newTestDiff("page-1", "actor-1", n), 0)
		require.NoError(t, err)
	}

	deleted, err := repo.EnforceRetention(ctx, "page-1", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	list, err := repo.ListByRecord(ctx, "page-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "page-1-diff-4", list[0].DiffID)
	assert.Equal(t, "page-1-diff-5", list[1].DiffID)

	// 已在界内时不再删除
	deleted, err = repo.EnforceRetention(ctx, "page-1", 2)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestPageDiffRepository_DeleteNewerThan(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageDiffRepository(d)
	ctx := context.Background()

	var seqs []int64
	for n := 1; n <= 4; n++ {
		created, err := repo.CreateWithRetention(ctx, newTestDiff("page-1", "actor-1", n), 0)
		require.NoError(t, err)
		seqs = append(seqs, created.Seq)
	}
	// 其他页面的差异不受影响
	_, err := repo.CreateWithRetention(ctx, newTestDiff("page-2", "actor-1", 9), 0)
	require.NoError(t, err)

	deleted, err := repo.DeleteNewerThan(ctx, "page-1", seqs[1])
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	list, err := repo.ListByRecord(ctx, "page-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "page-1-diff-1", list[0].DiffID)
	assert.Equal(t, "page-1-diff-2", list[1].DiffID)

	other, err := repo.CountByRecord(ctx, "page-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestPageDiffRepository_ClearByRecord(t *testing.T) {
	d := newTestDao(t)
	repo := NewPageDiffRepository(d)
	ctx := context.Background()

	for n := 1; n <= 3; n++ {
		_, err := repo.CreateWithRetention(ctx, newTestDiff("page-1", "actor-1", n), 0)
		require.NoError(t, err)
	}
	_, err := repo.CreateWithRetention(ctx, newTestDiff("page-2", "actor-2", 1), 0)
	require.NoError(t, err)

	require.NoError(t, repo.ClearByRecord(ctx, "page-1"))

	count, err := repo.CountByRecord(ctx, "page-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	ids, err := repo.ListRecordIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"page-2"}, ids)
}
