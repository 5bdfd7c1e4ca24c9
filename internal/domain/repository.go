// Package domain 定义领域模型和接口
package domain

import "context"

// PageRepository 页面仓储接口
type PageRepository interface {
	// GetByRecordID 根据页面记录ID获取页面
	GetByRecordID(ctx context.Context, recordID string) (*Page, error)

	// Create 创建页面
	Create(ctx context.Context, page *Page) (*Page, error)

	// Update 更新页面内容与元数据
	Update(ctx context.Context, page *Page) (*Page, error)

	// Delete 物理删除页面
	Delete(ctx context.Context, recordID string) error

	// List 分页获取页面列表
	List(ctx context.Context, page, pageSize int) ([]*Page, error)

	// ListCount 获取页面数量
	ListCount(ctx context.Context) (int64, error)
}

// PageDiffRepository 页面差异仓储接口
type PageDiffRepository interface {
	// GetByDiffID 根据差异ID获取差异记录
	GetByDiffID(ctx context.Context, diffID string) (*PageDiff, error)

	// CreateWithRetention 插入差异并在同一事务内按 maxDiffs 裁剪最旧差异
	// maxDiffs <= 0 时不裁剪
	CreateWithRetention(ctx context.Context, diff *PageDiff, maxDiffs int) (*PageDiff, error)

	// DeleteByDiffID 根据差异ID删除，目标不存在时静默成功
	DeleteByDiffID(ctx context.Context, diffID string) error

	// DeleteNewerThan 删除同一页面内 Seq 严格大于 seq 的差异，返回删除数量
	DeleteNewerThan(ctx context.Context, recordID string, seq int64) (int64, error)

	// ClearByRecord 删除页面的全部差异
	ClearByRecord(ctx context.Context, recordID string) error

	// ListByRecord 按创建时间升序获取页面的差异列表
	ListByRecord(ctx context.Context, recordID string) ([]*PageDiff, error)

	// ListByActor 按创建时间升序获取操作者的差异列表
	ListByActor(ctx context.Context, actorID string) ([]*PageDiff, error)

	// CountByRecord 获取页面的差异数量
	CountByRecord(ctx context.Context, recordID string) (int64, error)

	// EnforceRetention 按 maxDiffs 裁剪页面的最旧差异，返回删除数量
	EnforceRetention(ctx context.Context, recordID string, maxDiffs int) (int64, error)

	// ListRecordIDs 获取存在差异记录的页面记录ID列表
	ListRecordIDs(ctx context.Context) ([]string, error)
}
