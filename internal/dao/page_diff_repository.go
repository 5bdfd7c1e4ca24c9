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

// pageDiffRepository 实现 domain.PageDiffRepository 接口
type pageDiffRepository struct {
	dao *Dao
}

var _ domain.PageDiffRepository = (*pageDiffRepository)(nil)

// NewPageDiffRepository 创建 PageDiffRepository 实例
func NewPageDiffRepository(dao *Dao) domain.PageDiffRepository {
	return &pageDiffRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *pageDiffRepository) toDomain(m *model.PageDiff) *domain.PageDiff {
	if m == nil {
		return nil
	}
	return &domain.PageDiff{
		Seq:                   m.Seq,
		DiffID:                m.DiffID,
		RecordID:              m.RecordID,
		ActorID:               m.ActorID,
		Patch:                 m.Patch,
		ContentSnapshotBefore: m.ContentSnapshotBefore,
		MetadataSnapshot:      m.MetadataSnapshot,
		CreatedAt:             time.Time(m.CreatedAt),
	}
}

// GetByDiffID 根据差异ID获取差异记录，不存在时返回 nil
func (r *pageDiffRepository) GetByDiffID(ctx context.Context, diffID string) (*domain.PageDiff, error) {
	var m model.PageDiff
	err := r.dao.WithContext(ctx).Where("diff_id = ?", diffID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// CreateWithRetention 插入差异并在同一事务内按 maxDiffs 裁剪最旧差异
// 裁剪在插入之后计数，保留数量恰好为 maxDiffs
func (r *pageDiffRepository) CreateWithRetention(ctx context.Context, diff *domain.PageDiff, maxDiffs int) (*domain.PageDiff, error) {
	m := &model.PageDiff{
		DiffID:                diff.DiffID,
		RecordID:              diff.RecordID,
		ActorID:               diff.ActorID,
		Patch:                 diff.Patch,
		ContentSnapshotBefore: diff.ContentSnapshotBefore,
		MetadataSnapshot:      diff.MetadataSnapshot,
		CreatedAt:             timex.Time(diff.CreatedAt),
	}
	if diff.CreatedAt.IsZero() {
		m.CreatedAt = timex.Now()
	}

	err := r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if maxDiffs > 0 {
			return pruneOldest(tx, diff.RecordID, maxDiffs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// pruneOldest 删除页面内最旧的差异，使数量不超过 maxDiffs
func pruneOldest(tx *gorm.DB, recordID string, maxDiffs int) error {
	var count int64
	if err := tx.Model(&model.PageDiff{}).
		Where("record_id = ?", recordID).
		Count(&count).Error; err != nil {
		return err
	}
	excess := count - int64(maxDiffs)
	if excess <= 0 {
		return nil
	}

	var seqs []int64
	if err := tx.Model(&model.PageDiff{}).
		Where("record_id = ?", recordID).
		Order("created_at ASC, seq ASC").
		Limit(int(excess)).
		Pluck("seq", &seqs).Error; err != nil {
		return err
	}
	if len(seqs) == 0 {
		return nil
	}
	return tx.Where("seq IN ?", seqs).Delete(&model.PageDiff{}).Error
}

// DeleteByDiffID 根据差异ID删除，目标不存在时静默成功
func (r *pageDiffRepository) DeleteByDiffID(ctx context.Context, diffID string) error {
	return r.dao.WithContext(ctx).
		Where("diff_id = ?", diffID).
		Delete(&model.PageDiff{}).Error
}

// DeleteNewerThan 删除同一页面内 Seq 严格大于 seq 的差异，返回删除数量
func (r *pageDiffRepository) DeleteNewerThan(ctx context.Context, recordID string, seq int64) (int64, error) {
	result := r.dao.WithContext(ctx).
		Where("record_id = ? AND seq > ?", recordID, seq).
		Delete(&model.PageDiff{})
	return result.RowsAffected, result.Error
}

// ClearByRecord 删除页面的全部差异
func (r *pageDiffRepository) ClearByRecord(ctx context.Context, recordID string) error {
	return r.dao.WithContext(ctx).
		Where("record_id = ?", recordID).
		Delete(&model.PageDiff{}).Error
}

// ListByRecord 按创建时间升序获取页面的差异列表
func (r *pageDiffRepository) ListByRecord(ctx context.Context, recordID string) ([]*domain.PageDiff, error) {
	var ms []*model.PageDiff
	err := r.dao.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("created_at ASC, seq ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// ListByActor 按创建时间升序获取操作者的差异列表
func (r *pageDiffRepository) ListByActor(ctx context.Context, actorID string) ([]*domain.PageDiff, error) {
	var ms []*model.PageDiff
	err := r.dao.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at ASC, seq ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *pageDiffRepository) toDomainList(ms []*model.PageDiff) []*domain.PageDiff {
	list := make([]*domain.PageDiff, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list
}

// CountByRecord 获取页面的差异数量
func (r *pageDiffRepository) CountByRecord(ctx context.Context, recordID string) (int64, error) {
	var count int64
	err := r.dao.WithContext(ctx).Model(&model.PageDiff{}).
		Where("record_id = ?", recordID).
		Count(&count).Error
	return count, err
}

// EnforceRetention 按 maxDiffs 裁剪页面的最旧差异，返回删除数量
func (r *pageDiffRepository) EnforceRetention(ctx context.Context, recordID string, maxDiffs int) (int64, error) {
	if maxDiffs <= 0 {
		return 0, nil
	}

	before, err := r.CountByRecord(ctx, recordID)
	if err != nil {
		return 0, err
	}
	if before <= int64(maxDiffs) {
		return 0, nil
	}

	err = r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return pruneOldest(tx, recordID, maxDiffs)
	})
	if err != nil {
		return 0, err
	}
	return before - int64(maxDiffs), nil
}

// ListRecordIDs 获取存在差异记录的页面记录ID列表
func (r *pageDiffRepository) ListRecordIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.dao.WithContext(ctx).Model(&model.PageDiff{}).
		Distinct("record_id").
		Pluck("record_id", &ids).Error
	return ids, err
}
