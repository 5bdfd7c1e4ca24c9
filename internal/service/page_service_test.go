package service

import (
	"context"
	"testing"

	"github.com/haierkeys/page-revision-service/internal/dto"
	"github.com/haierkeys/page-revision-service/pkg/app"
	"github.com/haierkeys/page-revision-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPageService(pageRepo *mockPageRepo, diffRepo *mockPageDiffRepo) PageService {
	return NewPageService(pageRepo, diffRepo, nil, zap.NewNop(), &AppServiceConfig{RetentionMaxDiffs: 100})
}

func TestPageService_GetNotFound(t *testing.T) {
	svc := newTestPageService(newMockPageRepo(), newMockPageDiffRepo())

	_, err := svc.Get(context.Background(), "no-such-page")
	assert.Equal(t, code.ErrorPageNotFound, err)
}

func TestPageService_SetCreatesWithoutDiff(t *testing.T) {
	pageRepo := newMockPageRepo()
	diffRepo := newMockPageDiffRepo()
	svc := newTestPageService(pageRepo, diffRepo)
	ctx := context.Background()

	created, err := svc.Set(ctx, "actor-1", &dto.PageSetRequest{
		RecordID: "page-1",
		Content:  "hello world",
		Metadata: map[string]interface{}{"id": "page-1", "title": "Hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "page-1", created.RecordID)
	assert.Equal(t, "hello world", created.Content)
	assert.Equal(t, "Hello", created.Metadata["title"])

	// 首次写入没有前置状态，不记录差异
	count, err := diffRepo.CountByRecord(ctx, "page-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPageService_SetUpdateRecordsDiff(t *testing.T) {
	pageRepo := newMockPageRepo()
	diffRepo := newMockPageDiffRepo()
	svc := newTestPageService(pageRepo, diffRepo)
	ctx := context.Background()

	_, err := svc.Set(ctx, "actor-1", &dto.PageSetRequest{
		RecordID: "page-1",
		Content:  "hello world",
		Metadata: map[string]interface{}{"id": "page-1", "title": "Hello"},
	})
	require.NoError(t, err)

	updated, err := svc.Set(ctx, "actor-2", &dto.PageSetRequest{
		RecordID: "page-1",
		Content:  "hello there",
		Metadata: map[string]interface{}{"id": "page-1", "title": "Hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", updated.Content)
	assert.Equal(t, "Hi", updated.Metadata["title"])

	diffs, err := diffRepo.ListByRecord(ctx, "page-1")
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, "actor-2", diffs[0].ActorID)
	assert.Equal(t, "hello world", diffs[0].ContentSnapshotBefore)
	assert.Contains(t, diffs[0].Patch, "-hello world")
	assert.Contains(t, diffs[0].Patch, "+hello there")
}

func TestPageService_SetNoOpSkipsDiff(t *testing.T) {
	pageRepo := newMockPageRepo()
	diffRepo := newMockPageDiffRepo()
	svc := newTestPageService(pageRepo, diffRepo)
	ctx := context.Background()

	params := &dto.PageSetRequest{
		RecordID: "page-1",
		Content:  "hello world",
		Metadata: map[string]interface{}{"id": "page-1", "title": "Hello"},
	}
	_, err := svc.Set(ctx, "actor-1", params)
	require.NoError(t, err)

	// 内容与元数据均未变化，不产生新差异
	same, err := svc.Set(ctx, "actor-1", params)
	require.NoError(t, err)
	assert.Equal(t, "hello world", same.Content)

	count, err := diffRepo.CountByRecord(ctx, "page-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPageService_DeleteClearsDiffs(t *testing.T) {
	pageRepo := newMockPageRepo()
	diffRepo := newMockPageDiffRepo()
	svc := newTestPageService(pageRepo, diffRepo)
	ctx := context.Background()

	_, err := svc.Set(ctx, "actor-1", &dto.PageSetRequest{
		RecordID: "page-1",
		Content:  "v1",
		Metadata: map[string]interface{}{"id": "page-1"},
	})
	require.NoError(t, err)
	_, err = svc.Set(ctx, "actor-1", &dto.PageSetRequest{
		RecordID: "page-1",
		Content:  "v2",
		Metadata: map[string]interface{}{"id": "page-1"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "page-1"))

	_, err = svc.Get(ctx, "page-1")
	assert.Equal(t, code.ErrorPageNotFound, err)

	count, err := diffRepo.CountByRecord(ctx, "page-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPageService_List(t *testing.T) {
	pageRepo := newMockPageRepo()
	svc := newTestPageService(pageRepo, newMockPageDiffRepo())
	ctx := context.Background()

	for _, id := range []string{"page-a", "page-b"} {
		_, err := svc.Set(ctx, "actor-1", &dto.PageSetRequest{
			RecordID: id,
			Content:  "content of " + id,
			Metadata: map[string]interface{}{"id": id},
		})
		require.NoError(t, err)
	}

	list, total, err := svc.List(ctx, &app.Pager{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, "page-a", list[0].RecordID)
}
