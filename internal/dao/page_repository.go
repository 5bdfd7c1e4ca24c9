// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/page-revision-service/internal/domain"
	"github.com/haierkeys/page-revision-service/internal/model"
	"github.com/haierkeys/page-revision-service/pkg/timex"

	"gorm.io/gorm"
)

// pageRepository 实现 domain.PageRepository 接口
type pageRepository struct {
	dao *Dao
}

var _ domain.PageRepository = (*pageRepository)(nil)

// NewPageRepository 创建 PageRepository 实例
func NewPageRepository(dao *Dao) domain.PageRepository {
	return &pageRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *pageRepository) toDomain(m *model.Page) *domain.Page {
	if m == nil {
		return nil
	}
	return &domain.Page{
		ID:        m.ID,
		RecordID:  m.RecordID,
		Content:   m.Content,
		Metadata:  m.Metadata,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// GetByRecordID 根据页面记录ID获取页面，不存在时返回 nil
func (r *pageRepository) GetByRecordID(ctx context.Context, recordID string) (*domain.Page, error) {
	var m model.Page
	err := r.dao.WithContext(ctx).Where("record_id = ?", recordID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建页面
func (r *pageRepository) Create(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	now := timex.Now()
	m := &model.Page{
		RecordID:  page.RecordID,
		Content:   page.Content,
		Metadata:  page.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.dao.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新页面内容与元数据
func (r *pageRepository) Update(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	values := map[string]interface{}{
		"content":    page.Content,
		"metadata":   page.Metadata,
		"updated_at": timex.Now(),
	}

	err := r.dao.WithContext(ctx).Model(&model.Page{}).
		Where("record_id = ?", page.RecordID).
		Updates(values).Error
	if err != nil {
		return nil, err
	}
	return r.GetByRecordID(ctx, page.RecordID)
}

// Delete 物理删除页面
func (r *pageRepository) Delete(ctx context.Context, recordID string) error {
	return r.dao.WithContext(ctx).
		Where("record_id = ?", recordID).
		Delete(&model.Page{}).Error
}

// List 分页获取页面列表
func (r *pageRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Page, error) {
	var ms []*model.Page
	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	err := r.dao.WithContext(ctx).
		Order("updated_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Page, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// ListCount 获取页面数量
func (r *pageRepository) ListCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.WithContext(ctx).Model(&model.Page{}).Count(&count).Error
	return count, err
}
