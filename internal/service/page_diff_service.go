package service

import (
	"context"
	"time"

	"github.com/haierkeys/page-revision-service/internal/domain"
	"github.com/haierkeys/page-revision-service/internal/dto"
	"github.com/haierkeys/page-revision-service/pkg/code"
	"github.com/haierkeys/page-revision-service/pkg/diff"
	"github.com/haierkeys/page-revision-service/pkg/logger"
	"github.com/haierkeys/page-revision-service/pkg/timex"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Revert scopes
// 回滚作用域
const (
	RevertScopeContent = "content"
	RevertScopeData    = "data"
	RevertScopeBoth    = "both"
)

// metadataSnapshot is the stored shape of a diff's metadata snapshot
// metadataSnapshot 是差异元数据快照的存储形态
type metadataSnapshot struct {
	Before map[string]interface{} `json:"before"`
	After  map[string]interface{} `json:"after"`
}

// PageDiffService defines the page diff business service interface
// PageDiffService 定义页面差异业务服务接口
type PageDiffService interface {
	// Insert records one page modification as a diff, enforcing retention
	// Insert 将一次页面修改记录为差异，并执行保留裁剪
	Insert(ctx context.Context, actorID string, params *dto.DiffInsertRequest) (*dto.PageDiffDTO, error)

	// Get retrieves a single diff by ID
	// Get 根据 ID 获取单条差异
	Get(ctx context.Context, diffID string) (*dto.PageDiffDTO, error)

	// ListByRecord retrieves a page's diffs ascending by creation time
	// ListByRecord 按创建时间升序获取页面的差异列表
	ListByRecord(ctx context.Context, params *dto.DiffListRequest) ([]*dto.PageDiffDTO, error)

	// ListByActor retrieves an actor's diffs ascending by creation time
	// ListByActor 按创建时间升序获取操作者的差异列表
	ListByActor(ctx context.Context, params *dto.DiffListByActorRequest) ([]*dto.PageDiffDTO, error)

	// Clear removes all diffs of a page
	// Clear 清空页面的全部差异
	Clear(ctx context.Context, recordID string) error

	// Revert restores a page to the state captured by a diff
	// Revert 将页面恢复到某条差异捕获的状态
	Revert(ctx context.Context, diffID string, scope string) (*dto.RevertResultDTO, error)

	// MetadataDifferences compares two metadata snapshots field by field
	// MetadataDifferences 逐字段比较两个元数据快照
	MetadataDifferences(before, after map[string]interface{}) []diff.FieldChange

	// RenderDiffHTML renders a unified diff as an HTML view
	// RenderDiffHTML 将统一差异渲染为 HTML 视图
	RenderDiffHTML(params *dto.DiffRenderRequest) string

	// ListRecordIDs lists record IDs that currently hold diffs
	// ListRecordIDs 获取当前存在差异的页面记录ID列表
	ListRecordIDs(ctx context.Context) ([]string, error)

	// EnforceRetention prunes a page's oldest diffs down to the configured bound
	// EnforceRetention 按配置上限裁剪页面最旧的差异
	EnforceRetention(ctx context.Context, recordID string) (int64, error)
}

// pageDiffService implementation of PageDiffService interface
// pageDiffService 实现 PageDiffService 接口
type pageDiffService struct {
	diffRepo domain.PageDiffRepository // Diff repository // 差异仓库
	pageRepo domain.PageRepository     // Page repository // 页面仓库
	wq       WriteExecutor             // Per-page write serialization // 按页面串行化写操作
	sf       *singleflight.Group       // Singleflight group // 并发请求合并组
	logger   *zap.Logger               // Logger // 日志对象
	config   *AppServiceConfig         // Service configuration // 服务配置
}

// NewPageDiffService creates PageDiffService instance
// NewPageDiffService 创建 PageDiffService 实例
func NewPageDiffService(diffRepo domain.PageDiffRepository, pageRepo domain.PageRepository, wq WriteExecutor, logger *zap.Logger, config *AppServiceConfig) PageDiffService {
	if config == nil {
		config = &AppServiceConfig{RetentionMaxDiffs: 100}
	}
	if wq == nil {
		wq = NewDirectWriteExecutor()
	}
	return &pageDiffService{
		diffRepo: diffRepo,
		pageRepo: pageRepo,
		wq:       wq,
		sf:       &singleflight.Group{},
		logger:   logger,
		config:   config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *pageDiffService) domainToDTO(d *domain.PageDiff) *dto.PageDiffDTO {
	if d == nil {
		return nil
	}
	return &dto.PageDiffDTO{
		ID:                    d.DiffID,
		RecordID:              d.RecordID,
		ActorID:               d.ActorID,
		Patch:                 d.Patch,
		ContentSnapshotBefore: d.ContentSnapshotBefore,
		MetadataSnapshot:      d.MetadataSnapshot,
		Timestamp:             timex.Time(d.CreatedAt),
	}
}

// buildPageDiff assembles a diff record from a modification's before/after state
// buildPageDiff 从一次修改的前后状态组装差异记录
func buildPageDiff(actorID, recordID, contentBefore, contentAfter string, metadataBefore, metadataAfter map[string]interface{}) (*domain.PageDiff, error) {
	patch, err := diff.CreatePatch(contentBefore, contentAfter)
	if err != nil {
		return nil, code.ErrorPatchGenerate.WithDetails(err.Error())
	}

	snapshot, err := sonic.MarshalString(metadataSnapshot{
		Before: metadataBefore,
		After:  metadataAfter,
	})
	if err != nil {
		return nil, code.ErrorPatchGenerate.WithDetails(err.Error())
	}

	return &domain.PageDiff{
		DiffID:                uuid.NewString(),
		RecordID:              recordID,
		ActorID:               actorID,
		Patch:                 patch,
		ContentSnapshotBefore: contentBefore,
		MetadataSnapshot:      snapshot,
		CreatedAt:             time.Now().UTC(),
	}, nil
}

// maxDiffsOrDefault 请求未指定上限时使用服务配置
func (s *pageDiffService) maxDiffsOrDefault(maxDiffs int) int {
	if maxDiffs > 0 {
		return maxDiffs
	}
	return s.config.RetentionMaxDiffs
}

// Insert records one page modification as a diff, enforcing retention
// Insert 将一次页面修改记录为差异，并执行保留裁剪
func (s *pageDiffService) Insert(ctx context.Context, actorID string, params *dto.DiffInsertRequest) (*dto.PageDiffDTO, error) {
	d, err := buildPageDiff(actorID, params.RecordID, params.ContentBefore, params.ContentAfter, params.MetadataBefore, params.MetadataAfter)
	if err != nil {
		return nil, err
	}

	maxDiffs := s.maxDiffsOrDefault(params.MaxDiffs)

	var created *domain.PageDiff
	err = s.wq.Execute(ctx, pageWriteKey(params.RecordID), func() error {
		var cerr error
		created, cerr = s.diffRepo.CreateWithRetention(ctx, d, maxDiffs)
		return cerr
	})
	if err != nil {
		return nil, code.ErrorDiffInsertFailed.WithDetails(err.Error())
	}

	s.logger.Info("page diff recorded",
		zap.String(logger.FieldRecordID, created.RecordID),
		zap.String(logger.FieldDiffID, created.DiffID),
		zap.String(logger.FieldActorID, created.ActorID),
		zap.Int("maxDiffs", maxDiffs))

	return s.domainToDTO(created), nil
}

// Get retrieves a single diff by ID
// Get 根据 ID 获取单条差异
func (s *pageDiffService) Get(ctx context.Context, diffID string) (*dto.PageDiffDTO, error) {
	v, err, _ := s.sf.Do("diff_get_"+diffID, func() (interface{}, error) {
		return s.diffRepo.GetByDiffID(ctx, diffID)
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	d, _ := v.(*domain.PageDiff)
	if d == nil {
		return nil, code.ErrorDiffNotFound
	}
	return s.domainToDTO(d), nil
}

// tailDiffs keeps the newest n entries of an ascending list
// tailDiffs 保留升序列表中最新的 n 条
func tailDiffs(list []*domain.PageDiff, n int) []*domain.PageDiff {
	if n > 0 && len(list) > n {
		return list[len(list)-n:]
	}
	return list
}

// ListByRecord retrieves a page's diffs ascending by creation time
// ListByRecord 按创建时间升序获取页面的差异列表
func (s *pageDiffService) ListByRecord(ctx context.Context, params *dto.DiffListRequest) ([]*dto.PageDiffDTO, error) {
	list, err := s.diffRepo.ListByRecord(ctx, params.RecordID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTOList(tailDiffs(list, params.Latest)), nil
}

// ListByActor retrieves an actor's diffs ascending by creation time
// ListByActor 按创建时间升序获取操作者的差异列表
func (s *pageDiffService) ListByActor(ctx context.Context, params *dto.DiffListByActorRequest) ([]*dto.PageDiffDTO, error) {
	list, err := s.diffRepo.ListByActor(ctx, params.ActorID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTOList(tailDiffs(list, params.Latest)), nil
}

func (s *pageDiffService) domainToDTOList(list []*domain.PageDiff) []*dto.PageDiffDTO {
	out := make([]*dto.PageDiffDTO, 0, len(list))
	for _, d := range list {
		out = append(out, s.domainToDTO(d))
	}
	return out
}

// Clear removes all diffs of a page
// Clear 清空页面的全部差异
func (s *pageDiffService) Clear(ctx context.Context, recordID string) error {
	err := s.wq.Execute(ctx, pageWriteKey(recordID), func() error {
		return s.diffRepo.ClearByRecord(ctx, recordID)
	})
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// parseSnapshot validates and decodes a diff's metadata snapshot
// Both before and after states must carry the identifying "id" field,
// and the before id must match the diff's record,
// a missing or mismatched id indicates historical data corruption
// parseSnapshot 校验并解码差异的元数据快照
// before 与 after 状态都必须携带标识字段 "id"，且 before 的 id 必须与差异所属记录一致
// 缺失或不一致说明历史数据已损坏
func parseSnapshot(raw string, recordID string) (*metadataSnapshot, error) {
	var snap metadataSnapshot
	if err := sonic.UnmarshalString(raw, &snap); err != nil {
		return nil, code.ErrorInvalidMetadataStructure.WithDetails(err.Error())
	}
	if snap.Before == nil {
		return nil, code.ErrorInvalidMetadataStructure.WithDetails("metadata snapshot has no before state")
	}
	if _, ok := snap.Before["id"]; !ok {
		return nil, code.ErrorInvalidMetadataStructure.WithDetails("metadata snapshot before state is missing the id field")
	}
	if id, _ := snap.Before["id"].(string); id != recordID {
		return nil, code.ErrorInvalidMetadataStructure.WithDetails("metadata snapshot id does not match the diff's record")
	}
	if snap.After == nil {
		return nil, code.ErrorInvalidMetadataStructure.WithDetails("metadata snapshot has no after state")
	}
	if _, ok := snap.After["id"]; !ok {
		return nil, code.ErrorInvalidMetadataStructure.WithDetails("metadata snapshot after state is missing the id field")
	}
	return &snap, nil
}

// Revert restores a page to the state captured by a diff
// Sequence: lookup, metadata validate, apply metadata, apply content, prune
// Reverting to the same diff again is a no-op state-wise
// Revert 将页面恢复到某条差异捕获的状态
// 顺序：查找、校验元数据、应用元数据、应用内容、裁剪
// 对同一差异重复回滚不会改变状态
func (s *pageDiffService) Revert(ctx context.Context, diffID string, scope string) (*dto.RevertResultDTO, error) {
	if scope == "" {
		scope = RevertScopeBoth
	}

	d, err := s.diffRepo.GetByDiffID(ctx, diffID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if d == nil {
		return nil, code.ErrorDiffNotFound
	}

	var snap *metadataSnapshot
	if scope == RevertScopeData || scope == RevertScopeBoth {
		snap, err = parseSnapshot(d.MetadataSnapshot, d.RecordID)
		if err != nil {
			return nil, err
		}
	}

	var result *dto.RevertResultDTO
	err = s.wq.Execute(ctx, pageWriteKey(d.RecordID), func() error {
		page, perr := s.pageRepo.GetByRecordID(ctx, d.RecordID)
		if perr != nil {
			return code.ErrorDBQuery.WithDetails(perr.Error())
		}
		if page == nil {
			return code.ErrorPageNotFound
		}

		if snap != nil {
			metadata, merr := sonic.MarshalString(snap.Before)
			if merr != nil {
				return code.ErrorRevertFailed.WithDetails(merr.Error())
			}
			page.Metadata = metadata
		}
		if scope == RevertScopeContent || scope == RevertScopeBoth {
			page.Content = d.ContentSnapshotBefore
		}

		updated, uerr := s.pageRepo.Update(ctx, page)
		if uerr != nil {
			return code.ErrorRevertFailed.WithDetails(uerr.Error())
		}

		// 删除严格晚于该差异的历史，保持历史线性
		pruned, derr := s.diffRepo.DeleteNewerThan(ctx, d.RecordID, d.Seq)
		if derr != nil {
			return code.ErrorRevertFailed.WithDetails(derr.Error())
		}

		metadata := map[string]interface{}{}
		if updated.Metadata != "" {
			if merr := sonic.UnmarshalString(updated.Metadata, &metadata); merr != nil {
				s.logger.Warn("revert: page metadata is not valid JSON",
					zap.String(logger.FieldRecordID, d.RecordID),
					zap.Error(merr))
			}
		}

		result = &dto.RevertResultDTO{
			RecordID:    d.RecordID,
			DiffID:      d.DiffID,
			Scope:       scope,
			PrunedCount: pruned,
			Content:     updated.Content,
			Metadata:    metadata,
		}
		return nil
	})
	if err != nil {
		if c, ok := err.(*code.Code); ok {
			return nil, c
		}
		return nil, code.ErrorRevertFailed.WithDetails(err.Error())
	}

	s.logger.Info("page reverted",
		zap.String(logger.FieldRecordID, result.RecordID),
		zap.String(logger.FieldDiffID, diffID),
		zap.String(logger.FieldScope, scope),
		zap.Int64("prunedCount", result.PrunedCount))

	return result, nil
}

// MetadataDifferences compares two metadata snapshots field by field
// MetadataDifferences 逐字段比较两个元数据快照
func (s *pageDiffService) MetadataDifferences(before, after map[string]interface{}) []diff.FieldChange {
	return diff.Changes(before, after)
}

// RenderDiffHTML renders a unified diff as an HTML view
// RenderDiffHTML 将统一差异渲染为 HTML 视图
func (s *pageDiffService) RenderDiffHTML(params *dto.DiffRenderRequest) (html string) {
	opts := diff.DefaultRenderOptions()
	if params.WordLevel != nil {
		opts.WordLevel = *params.WordLevel
	}
	if params.SideBySide != nil {
		opts.SideBySide = *params.SideBySide
	}

	// Render panics produce an empty view
	// 渲染崩溃时返回空视图
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered in RenderDiffHTML",
				zap.Any("panic", r))
			html = ""
		}
	}()

	return diff.RenderHTML(params.Patch, opts)
}

// ListRecordIDs lists record IDs that currently hold diffs
// ListRecordIDs 获取当前存在差异的页面记录ID列表
func (s *pageDiffService) ListRecordIDs(ctx context.Context) ([]string, error) {
	ids, err := s.diffRepo.ListRecordIDs(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return ids, nil
}

// EnforceRetention prunes a page's oldest diffs down to the configured bound
// EnforceRetention 按配置上限裁剪页面最旧的差异
func (s *pageDiffService) EnforceRetention(ctx context.Context, recordID string) (int64, error) {
	var pruned int64
	err := s.wq.Execute(ctx, pageWriteKey(recordID), func() error {
		var perr error
		pruned, perr = s.diffRepo.EnforceRetention(ctx, recordID, s.config.RetentionMaxDiffs)
		return perr
	})
	if err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return pruned, nil
}
