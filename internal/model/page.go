package model

import "github.com/haierkeys/page-revision-service/pkg/timex"

const TableNamePage = "page"

// Page mapped from table <page>
type Page struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	RecordID  string     `gorm:"column:record_id;not null;uniqueIndex:idx_page_record" json:"recordId" form:"recordId"`
	Content   string     `gorm:"column:content;type:text" json:"content" form:"content"`
	Metadata  string     `gorm:"column:metadata;type:text" json:"metadata" form:"metadata"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Page's table name
func (*Page) TableName() string {
	return TableNamePage
}
