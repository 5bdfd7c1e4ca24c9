package model

import "github.com/haierkeys/page-revision-service/pkg/timex"

const TableNamePageDiff = "page_diff"

// PageDiff mapped from table <page_diff>
// Seq 为自增主键，同一页面内按 Seq 可判定差异先后
type PageDiff struct {
	Seq                   int64      `gorm:"column:seq;primaryKey;autoIncrement" json:"seq" form:"seq"`
	DiffID                string     `gorm:"column:diff_id;not null;uniqueIndex:idx_page_diff_id" json:"diffId" form:"diffId"`
	RecordID              string     `gorm:"column:record_id;not null;index:idx_page_diff_record" json:"recordId" form:"recordId"`
	ActorID               string     `gorm:"column:actor_id;not null;index:idx_page_diff_actor" json:"actorId" form:"actorId"`
	Patch                 string     `gorm:"column:patch;type:text" json:"patch" form:"patch"`
	ContentSnapshotBefore string     `gorm:"column:content_snapshot_before;type:text" json:"contentSnapshotBefore" form:"contentSnapshotBefore"`
	MetadataSnapshot      string     `gorm:"column:metadata_snapshot;type:text" json:"metadataSnapshot" form:"metadataSnapshot"`
	CreatedAt             timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false;index:idx_page_diff_created" json:"createdAt" form:"createdAt"`
}

// TableName PageDiff's table name
func (*PageDiff) TableName() string {
	return TableNamePageDiff
}
