// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/page-revision-service/pkg/timex"
)

// PageDTO 页面数据传输对象
type PageDTO struct {
	RecordID  string                 `json:"recordId" form:"recordId"`
	Content   string                 `json:"content" form:"content"`
	Metadata  map[string]interface{} `json:"metadata" form:"metadata"`
	CreatedAt timex.Time             `json:"createdAt"`
	UpdatedAt timex.Time             `json:"updatedAt"`
}

// PageGetRequest 获取页面的请求参数
type PageGetRequest struct {
	RecordID string `json:"id" form:"id" binding:"required"`
}

// PageSetRequest 创建或更新页面的请求参数
// 已存在的页面更新时会走差异记录流程
type PageSetRequest struct {
	RecordID string                 `json:"recordId" form:"recordId" binding:"required"`
	Content  string                 `json:"content" form:"content"`
	Metadata map[string]interface{} `json:"metadata" form:"metadata"`
	// MaxDiffs 本页面的差异保留上限，0 表示使用服务配置
	MaxDiffs int `json:"maxDiffs" form:"maxDiffs"`
}

// PageDeleteRequest 删除页面的请求参数
type PageDeleteRequest struct {
	RecordID string `json:"id" form:"id" binding:"required"`
}
