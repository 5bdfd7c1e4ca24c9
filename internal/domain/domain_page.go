// Package domain 定义领域模型和接口
package domain

import "time"

// Page 页面领域模型
// Metadata 为页面结构化元数据的 JSON 文本
type Page struct {
	ID        int64
	RecordID  string
	Content   string
	Metadata  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
