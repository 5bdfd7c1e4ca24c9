package service

import (
	"context"

	"github.com/haierkeys/page-revision-service/internal/domain"
	"github.com/haierkeys/page-revision-service/internal/dto"
	"github.com/haierkeys/page-revision-service/pkg/app"
	"github.com/haierkeys/page-revision-service/pkg/code"
	"github.com/haierkeys/page-revision-service/pkg/logger"
	"github.com/haierkeys/page-revision-service/pkg/timex"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// PageService defines the page business service interface
// PageService 定义页面业务服务接口
type PageService interface {
	// Get retrieves a page by record ID
	// Get 根据记录ID获取页面
	Get(ctx context.Context, recordID string) (*dto.PageDTO, error)

	// Set creates a page or updates it; updates record a diff of the change
	// Set 创建或更新页面；更新时会记录本次修改的差异
	Set(ctx context.Context, actorID string, params *dto.PageSetRequest) (*dto.PageDTO, error)

	// Delete removes a page together with its diff history
	// Delete 删除页面及其全部差异历史
	Delete(ctx context.Context, recordID string) error

	// List retrieves pages with pagination
	// List 分页获取页面列表
	List(ctx context.Context, pager *app.Pager) ([]*dto.PageDTO, int64, error)
}

// pageService implementation of PageService interface
// pageService 实现 PageService 接口
type pageService struct {
	pageRepo domain.PageRepository     // Page repository // 页面仓库
	diffRepo domain.PageDiffRepository // Diff repository // 差异仓库
	wq       WriteExecutor             // Per-page write serialization // 按页面串行化写操作
	logger   *zap.Logger               // Logger // 日志对象
	config   *AppServiceConfig         // Service configuration // 服务配置
}

// NewPageService creates PageService instance
// NewPageService 创建 PageService 实例
func NewPageService(pageRepo domain.PageRepository, diffRepo domain.PageDiffRepository, wq WriteExecutor, logger *zap.Logger, config *AppServiceConfig) PageService {
	if config == nil {
		config = &AppServiceConfig{RetentionMaxDiffs: 100}
	}
	if wq == nil {
		wq = NewDirectWriteExecutor()
	}
	return &pageService{
		pageRepo: pageRepo,
		diffRepo: diffRepo,
		wq:       wq,
		logger:   logger,
		config:   config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *pageService) domainToDTO(page *domain.Page) *dto.PageDTO {
	if page == nil {
		return nil
	}

	metadata := map[string]interface{}{}
	if page.Metadata != "" {
		if err := sonic.UnmarshalString(page.Metadata, &metadata); err != nil {
			s.logger.Warn("page metadata is not valid JSON",
				zap.String(logger.FieldRecordID, page.RecordID),
				zap.Error(err))
		}
	}

	return &dto.PageDTO{
		RecordID:  page.RecordID,
		Content:   page.Content,
		Metadata:  metadata,
		CreatedAt: timex.Time(page.CreatedAt),
		UpdatedAt: timex.Time(page.UpdatedAt),
	}
}

// Get retrieves a page by record ID
// Get 根据记录ID获取页面
func (s *pageService) Get(ctx context.Context, recordID string) (*dto.PageDTO, error) {
	page, err := s.pageRepo.GetByRecordID(ctx, recordID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if page == nil {
		return nil, code.ErrorPageNotFound
	}
	return s.domainToDTO(page), nil
}

// Set creates a page or updates it; updates record a diff of the change
// Set 创建或更新页面；更新时会记录本次修改的差异
func (s *pageService) Set(ctx context.Context, actorID string, params *dto.PageSetRequest) (*dto.PageDTO, error) {
	metadata, err := sonic.MarshalString(params.Metadata)
	if err != nil {
		return nil, code.ErrorInvalidParams.WithDetails(err.Error())
	}

	existing, err := s.pageRepo.GetByRecordID(ctx, params.RecordID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if existing == nil {
		return s.create(ctx, params.RecordID, params.Content, metadata)
	}
	return s.update(ctx, actorID, existing, params, metadata)
}

// create 首次写入页面，没有前置状态，不记录差异
func (s *pageService) create(ctx context.Context, recordID, content, metadata string) (*dto.PageDTO, error) {
	var created *domain.Page
	err := s.wq.Execute(ctx, pageWriteKey(recordID), func() error {
		var cerr error
		created, cerr = s.pageRepo.Create(ctx, &domain.Page{
			RecordID: recordID,
			Content:  content,
			Metadata: metadata,
		})
		return cerr
	})
	if err != nil {
		return nil, code.ErrorPageCreateFailed.WithDetails(err.Error())
	}

	s.logger.Info("page created", zap.String(logger.FieldRecordID, recordID))
	return s.domainToDTO(created), nil
}

// update 更新页面并在同一写序列内记录差异
func (s *pageService) update(ctx context.Context, actorID string, existing *domain.Page, params *dto.PageSetRequest, metadata string) (*dto.PageDTO, error) {
	// 内容与元数据均未变化时不产生新差异
	if existing.Content == params.Content && existing.Metadata == metadata {
		return s.domainToDTO(existing), nil
	}

	metadataBefore := map[string]interface{}{}
	if existing.Metadata != "" {
		if err := sonic.UnmarshalString(existing.Metadata, &metadataBefore); err != nil {
			s.logger.Warn("page metadata is not valid JSON",
				zap.String(logger.FieldRecordID, existing.RecordID),
				zap.Error(err))
		}
	}

	d, err := buildPageDiff(actorID, existing.RecordID, existing.Content, params.Content, metadataBefore, params.Metadata)
	if err != nil {
		return nil, err
	}

	maxDiffs := params.MaxDiffs
	if maxDiffs <= 0 {
		maxDiffs = s.config.RetentionMaxDiffs
	}

	var updated *domain.Page
	err = s.wq.Execute(ctx, pageWriteKey(existing.RecordID), func() error {
		if _, cerr := s.diffRepo.CreateWithRetention(ctx, d, maxDiffs); cerr != nil {
			return cerr
		}

		var uerr error
		updated, uerr = s.pageRepo.Update(ctx, &domain.Page{
			RecordID: existing.RecordID,
			Content:  params.Content,
			Metadata: metadata,
		})
		return uerr
	})
	if err != nil {
		return nil, code.ErrorPageUpdateFailed.WithDetails(err.Error())
	}

	s.logger.Info("page updated",
		zap.String(logger.FieldRecordID, existing.RecordID),
		zap.String(logger.FieldActorID, actorID),
		zap.String(logger.FieldDiffID, d.DiffID))

	return s.domainToDTO(updated), nil
}

// Delete removes a page together with its diff history
// Delete 删除页面及其全部差异历史
func (s *pageService) Delete(ctx context.Context, recordID string) error {
	err := s.wq.Execute(ctx, pageWriteKey(recordID), func() error {
		if derr := s.pageRepo.Delete(ctx, recordID); derr != nil {
			return derr
		}
		return s.diffRepo.ClearByRecord(ctx, recordID)
	})
	if err != nil {
		return code.ErrorPageDeleteFailed.WithDetails(err.Error())
	}

	s.logger.Info("page deleted", zap.String(logger.FieldRecordID, recordID))
	return nil
}

// List retrieves pages with pagination
// List 分页获取页面列表
func (s *pageService) List(ctx context.Context, pager *app.Pager) ([]*dto.PageDTO, int64, error) {
	count, err := s.pageRepo.ListCount(ctx)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	pages, err := s.pageRepo.List(ctx, pager.Page, pager.PageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	list := make([]*dto.PageDTO, 0, len(pages))
	for _, p := range pages {
		list = append(list, s.domainToDTO(p))
	}
	return list, count, nil
}
