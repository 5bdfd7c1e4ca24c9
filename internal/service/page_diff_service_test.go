package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/haierkeys/page-revision-service/internal/domain"
	"github.com/haierkeys/page-revision-service/internal/dto"
	"github.com/haierkeys/page-revision-service/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockPageDiffRepo 内存实现，用于服务层测试
type mockPageDiffRepo struct {
	diffs       []*domain.PageDiff
	nextSeq     int64
	lastMaxDiff int
}

var _ domain.PageDiffRepository = (*mockPageDiffRepo)(nil)

func newMockPageDiffRepo() *mockPageDiffRepo {
	return &mockPageDiffRepo{nextSeq: 1}
}

func (m *mockPageDiffRepo) GetByDiffID(ctx context.Context, diffID string) (*domain.PageDiff, error) {
	for _, d := range m.diffs {
		if d.DiffID == diffID {
			clone := *d
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockPageDiffRepo) CreateWithRetention(ctx context.Context, diff *domain.PageDiff, maxDiffs int) (*domain.PageDiff, error) {
	m.lastMaxDiff = maxDiffs
	clone := *diff
	clone.Seq = m.nextSeq
	m.nextSeq++
	m.diffs = append(m.diffs, &clone)
	if maxDiffs > 0 {
		m.prune(diff.RecordID, maxDiffs)
	}
	out := clone
	return &out, nil
}

func (m *mockPageDiffRepo) prune(recordID string, maxDiffs int) {
	var record []*domain.PageDiff
	for _, d := range m.diffs {
		if d.RecordID == recordID {
			record = append(record, d)
		}
	}
	if len(record) <= maxDiffs {
		return
	}
	sort.Slice(record, func(i, j int) bool { return record[i].Seq < record[j].Seq })
	drop := map[int64]bool{}
	for _, d := range record[:len(record)-maxDiffs] {
		drop[d.Seq] = true
	}
	kept := m.diffs[:0]
	for _, d := range m.diffs {
		if !drop[d.Seq] {
			kept = append(kept, d)
		}
	}
	m.diffs = kept
}

func (m *mockPageDiffRepo) DeleteByDiffID(ctx context.Context, diffID string) error {
	kept := m.diffs[:0]
	for _, d := range m.diffs {
		if d.DiffID != diffID {
			kept = append(kept, d)
		}
	}
	m.diffs = kept
	return nil
}

func (m *mockPageDiffRepo) DeleteNewerThan(ctx context.Context, recordID string, seq int64) (int64, error) {
	var deleted int64
	kept := m.diffs[:0]
	for _, d := range m.diffs {
		if d.RecordID == recordID && d.Seq > seq {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	m.diffs = kept
	return deleted, nil
}

func (m *mockPageDiffRepo) ClearByRecord(ctx context.Context, recordID string) error {
	kept := m.diffs[:0]
	for _, d := range m.diffs {
		if d.RecordID != recordID {
			kept = append(kept, d)
		}
	}
	m.diffs = kept
	return nil
}

func (m *mockPageDiffRepo) ListByRecord(ctx context.Context, recordID string) ([]*domain.PageDiff, error) {
	var out []*domain.PageDiff
	for _, d := range m.diffs {
		if d.RecordID == recordID {
			clone := *d
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Seq < out[j].Seq
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockPageDiffRepo) ListByActor(ctx context.Context, actorID string) ([]*domain.PageDiff, error) {
	var out []*domain.PageDiff
	for _, d := range m.diffs {
		if d.ActorID == actorID {
			clone := *d
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Seq < out[j].Seq
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockPageDiffRepo) CountByRecord(ctx context.Context, recordID string) (int64, error) {
	var count int64
	for _, d := range m.diffs {
		if d.RecordID == recordID {
			count++
		}
	}
	return count, nil
}

func (m *mockPageDiffRepo) EnforceRetention(ctx context.Context, recordID string, maxDiffs int) (int64, error) {
	before, _ := m.CountByRecord(ctx, recordID)
	if maxDiffs <= 0 || before <= int64(maxDiffs) {
		return 0, nil
	}
	m.prune(recordID, maxDiffs)
	return before - int64(maxDiffs), nil
}

func (m *mockPageDiffRepo) ListRecordIDs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, d := range m.diffs {
		if !seen[d.RecordID] {
			seen[d.RecordID] = true
			ids = append(ids, d.RecordID)
		}
	}
	return ids, nil
}

// mockPageRepo 内存实现，用于服务层测试
type mockPageRepo struct {
	pages  map[string]*domain.Page
	nextID int64
}

var _ domain.PageRepository = (*mockPageRepo)(nil)

func newMockPageRepo() *mockPageRepo {
	return &mockPageRepo{pages: map[string]*domain.Page{}, nextID: 1}
}

func (m *mockPageRepo) GetByRecordID(ctx context.Context, recordID string) (*domain.Page, error) {
	p, ok := m.pages[recordID]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (m *mockPageRepo) Create(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	clone := *page
	clone.ID = m.nextID
	m.nextID++
	clone.CreatedAt = time.Now().UTC()
	clone.UpdatedAt = clone.CreatedAt
	m.pages[page.RecordID] = &clone
	out := clone
	return &out, nil
}

func (m *mockPageRepo) Update(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	existing, ok := m.pages[page.RecordID]
	if !ok {
		return nil, nil
	}
	existing.Content = page.Content
	existing.Metadata = page.Metadata
	existing.UpdatedAt = time.Now().UTC()
	clone := *existing
	return &clone, nil
}

func (m *mockPageRepo) Delete(ctx context.Context, recordID string) error {
	delete(m.pages, recordID)
	return nil
}

func (m *mockPageRepo) List(ctx context.Context, page, pageSize int) ([]*domain.Page, error) {
	var out []*domain.Page
	for _, p := range m.pages {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID < out[j].RecordID })
	return out, nil
}

func (m *mockPageRepo) ListCount(ctx context.Context) (int64, error) {
	return int64(len(m.pages)), nil
}

func newTestDiffService(diffRepo *mockPageDiffRepo, pageRepo *mockPageRepo) PageDiffService {
	return NewPageDiffService(diffRepo, pageRepo, nil, zap.NewNop(), &AppServiceConfig{RetentionMaxDiffs: 100})
}

func insertReq(recordID string, n int) *dto.DiffInsertRequest {
	return &dto.DiffInsertRequest{
		RecordID:      recordID,
		ContentBefore: "content v" + string(rune('0'+n)),
		ContentAfter:  "content v" + string(rune('1'+n)),
		MetadataBefore: map[string]interface{}{
			"id":    recordID,
			"title": "Title v" + string(rune('0'+n)),
		},
		MetadataAfter: map[string]interface{}{
			"id":    recordID,
			"title": "Title v" + string(rune('1'+n)),
		},
	}
}

func TestPageDiffService_Insert(t *testing.T) {
	diffRepo := newMockPageDiffRepo()
	svc := newTestDiffService(diffRepo, newMockPageRepo())
	ctx := context.Background()

	created, err := svc.Insert(ctx, "actor-1", insertReq("page-1", 1))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "page-1", created.RecordID)
	assert.Equal(t, "actor-1", created.ActorID)
	assert.Contains(t, created.Patch, "--- Content")
	assert.Contains(t, created.Patch, "+++ Content")
	assert.Contains(t, created.Patch, "-content v1")
	assert.Contains(t, created.Patch, "+content v2")
	assert.Equal(t, "content v1", created.ContentSnapshotBefore)
	assert.False(t, time.Time(created.Timestamp).IsZero())

	// 元数据快照为 before/after JSON
	var snap metadataSnapshot
	require.NoError(t, sonic.UnmarshalString(created.MetadataSnapshot, &snap))
	assert.Equal(t, "page-1", snap.Before["id"])
	assert.Equal(t, "Title v2", snap.After["title"])

	// 未指定上限时使用服务配置
	assert.Equal(t, 100, diffRepo.lastMaxDiff)

	// 请求指定上限时覆盖配置
	req := insertReq("page-1", 2)
	req.MaxDiffs = 5
	_, err = svc.Insert(ctx, "actor-1", req)
	require.NoError(t, err)
	assert.Equal(t, 5, diffRepo.lastMaxDiff)
}

func TestPageDiffService_GetNotFound(t *testing.T) {
	svc := newTestDiffService(newMockPageDiffRepo(), newMockPageRepo())

	_, err := svc.Get(context.Background(), "no-such-diff")
	assert.Equal(t, code.ErrorDiffNotFound, err)
}

func TestPageDiffService_ListLatest(t *testing.T) {
	diffRepo := newMockPageDiffRepo()
	svc := newTestDiffService(diffRepo, newMockPageRepo())
	ctx := context.Background()

	var ids []string
	for n := 1; n <= 4; n++ {
		created, err := svc.Insert(ctx, "actor-1", insertReq("page-1", n))
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	// latest=2 返回最新两条，且仍为升序
	list, err := svc.ListByRecord(ctx, &dto.DiffListRequest{RecordID: "page-1", Latest: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[3], list[1].ID)

	// latest 超过数量时返回全部
	list, err = svc.ListByRecord(ctx, &dto.DiffListRequest{RecordID: "page-1", Latest: 10})
	require.NoError(t, err)
	assert.Len(t, list, 4)

	byActor, err := svc.ListByActor(ctx, &dto.DiffListByActorRequest{ActorID: "actor-1", Latest: 3})
	require.NoError(t, err)
	assert.Len(t, byActor, 3)
}

func TestPageDiffService_RevertPrunesLaterDiffs(t *testing.T) {
	diffRepo := newMockPageDiffRepo()
	pageRepo := newMockPageRepo()
	svc := newTestDiffService(diffRepo, pageRepo)
	ctx := context.Background()

	_, err := pageRepo.Create(ctx, &domain.Page{
		RecordID: "page-1",
		Content:  "content v4",
		Metadata: `{"id":"page-1","title":"Title v4"}`,
	})
	require.NoError(t, err)

	var ids []string
	for n := 1; n <= 3; n++ {
		created, ierr := svc.Insert(ctx, "actor-1", insertReq("page-1", n))
		require.NoError(t, ierr)
		ids = append(ids, created.ID)
	}

	// 回滚到第二条差异，第三条被裁剪
	result, err := svc.Revert(ctx, ids[1], RevertScopeBoth)
	require.NoError(t, err)
	assert.Equal(t, "page-1", result.RecordID)
	assert.Equal(t, int64(1), result.PrunedCount)
	assert.Equal(t, "content v2", result.Content)
	assert.Equal(t, "Title v2", result.Metadata["title"])

	list, err := svc.ListByRecord(ctx, &dto.DiffListRequest{RecordID: "page-1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)

	// 对同一差异重复回滚：无更晚差异可裁剪，状态不变
	again, err := svc.Revert(ctx, ids[1], RevertScopeBoth)
	require.NoError(t, err)
	assert.Zero(t, again.PrunedCount)
	assert.Equal(t, result.Content, again.Content)

	page, err := pageRepo.GetByRecordID(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, "content v2", page.Content)
}

func TestPageDiffService_RevertScopes(t *testing.T) {
	diffRepo := newMockPageDiffRepo()
	pageRepo := newMockPageRepo()
	svc := newTestDiffService(diffRepo, pageRepo)
	ctx := context.Background()

	_, err := pageRepo.Create(ctx, &domain.Page{
		RecordID: "page-1",
		Content:  "current content",
		Metadata: `{"id":"page-1","title":"Current"}`,
	})
	require.NoError(t, err)

	created, err := svc.Insert(ctx, "actor-1", insertReq("page-1", 1))
	require.NoError(t, err)

	// scope=content 只回滚内容
	result, err := svc.Revert(ctx, created.ID, RevertScopeContent)
	require.NoError(t, err)
	assert.Equal(t, "content v1", result.Content)
	assert.Equal(t, "Current", result.Metadata["title"])

	// scope=data 只回滚元数据
	result, err = svc.Revert(ctx, created.ID, RevertScopeData)
	require.NoError(t, err)
	assert.Equal(t, "content v1", result.Content)
	assert.Equal(t, "Title v1", result.Metadata["title"])

	// 空 scope 按 both 处理
	result, err = svc.Revert(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, RevertScopeBoth, result.Scope)
}

func TestPageDiffService_RevertErrors(t *testing.T) {
	diffRepo := newMockPageDiffRepo()
	pageRepo := newMockPageRepo()
	svc := newTestDiffService(diffRepo, pageRepo)
	ctx := context.Background()

	// 差异不存在
	_, err := svc.Revert(ctx, "no-such-diff", RevertScopeBoth)
	assert.Equal(t, code.ErrorDiffNotFound, err)

	// 元数据快照缺少 id 字段
	badReq := insertReq("page-1", 1)
	delete(badReq.MetadataBefore, "id")
	bad, err := svc.Insert(ctx, "actor-1", badReq)
	require.NoError(t, err)

	_, err = svc.Revert(ctx, bad.ID, RevertScopeBoth)
	require.Error(t, err)
	c, ok := err.(*code.Code)
	require.True(t, ok)
	assert.Equal(t, code.ErrorInvalidMetadataStructure.Code(), c.Code())

	// 元数据快照缺少 after 状态
	noAfterReq := insertReq("page-1", 1)
	noAfterReq.MetadataAfter = nil
	noAfter, err := svc.Insert(ctx, "actor-1", noAfterReq)
	require.NoError(t, err)

	_, err = svc.Revert(ctx, noAfter.ID, RevertScopeData)
	require.Error(t, err)
	c, ok = err.(*code.Code)
	require.True(t, ok)
	assert.Equal(t, code.ErrorInvalidMetadataStructure.Code(), c.Code())

	// before 的 id 与差异所属记录不一致
	mismatchReq := insertReq("page-1", 1)
	mismatchReq.MetadataBefore["id"] = "page-2"
	mismatch, err := svc.Insert(ctx, "actor-1", mismatchReq)
	require.NoError(t, err)

	_, err = svc.Revert(ctx, mismatch.ID, RevertScopeBoth)
	require.Error(t, err)
	c, ok = err.(*code.Code)
	require.True(t, ok)
	assert.Equal(t, code.ErrorInvalidMetadataStructure.Code(), c.Code())

	// scope=content 不校验元数据快照，但页面不存在
	_, err = svc.Revert(ctx, bad.ID, RevertScopeContent)
	c, ok = err.(*code.Code)
	require.True(t, ok)
	assert.Equal(t, code.ErrorPageNotFound.Code(), c.Code())
}

func TestPageDiffService_ClearAndRetention(t *testing.T) {
	diffRepo := newMockPageDiffRepo()
	svc := NewPageDiffService(diffRepo, newMockPageRepo(), nil, zap.NewNop(), &AppServiceConfig{RetentionMaxDiffs: 2})
	ctx := context.Background()

	for n := 1; n <= 4; n++ {
		_, err := diffRepo.CreateWithRetention(ctx, &domain.PageDiff{
			DiffID:    "d" + string(rune('0'+n)),
			RecordID:  "page-1",
			ActorID:   "actor-1",
			CreatedAt: time.Now().UTC(),
		}, 0)
		require.NoError(t, err)
	}

	pruned, err := svc.EnforceRetention(ctx, "page-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	ids, err := svc.ListRecordIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"page-1"}, ids)

	require.NoError(t, svc.Clear(ctx, "page-1"))
	count, err := diffRepo.CountByRecord(ctx, "page-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPageDiffService_MetadataDifferences(t *testing.T) {
	svc := newTestDiffService(newMockPageDiffRepo(), newMockPageRepo())

	changes := svc.MetadataDifferences(
		map[string]interface{}{"title": "Old", "updatedAt": "2024-01-01"},
		map[string]interface{}{"title": "New", "updatedAt": "2024-02-02"},
	)
	require.Len(t, changes, 1)
	assert.Equal(t, "Page Title", changes[0].Label)
}

func TestPageDiffService_RenderDiffHTML(t *testing.T) {
	svc := newTestDiffService(newMockPageDiffRepo(), newMockPageRepo())

	// 空补丁渲染为空视图
	assert.Empty(t, svc.RenderDiffHTML(&dto.DiffRenderRequest{Patch: ""}))

	patch := "--- Content\n+++ Content\n@@ -1 +1 @@\n-old line\n+new line\n"
	html := svc.RenderDiffHTML(&dto.DiffRenderRequest{Patch: patch})
	assert.Contains(t, html, "diff-table")
	assert.Contains(t, html, "old line")
}
