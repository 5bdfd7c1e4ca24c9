package dto

import (
	"github.com/haierkeys/page-revision-service/pkg/diff"
	"github.com/haierkeys/page-revision-service/pkg/timex"
)

// PageDiffDTO 页面差异数据传输对象
// MetadataSnapshot 为 {"before":{...},"after":{...}} 的 JSON 文本
type PageDiffDTO struct {
	ID                    string     `json:"id"`
	RecordID              string     `json:"recordId"`
	ActorID               string     `json:"actorId"`
	Patch                 string     `json:"patch"`
	ContentSnapshotBefore string     `json:"contentSnapshotBefore"`
	MetadataSnapshot      string     `json:"metadataSnapshot"`
	Timestamp             timex.Time `json:"timestamp"`
}

// DiffInsertRequest 记录一次页面修改的请求参数
type DiffInsertRequest struct {
	RecordID       string                 `json:"recordId" form:"recordId" binding:"required"`
	ContentBefore  string                 `json:"contentBefore" form:"contentBefore"`
	ContentAfter   string                 `json:"contentAfter" form:"contentAfter"`
	MetadataBefore map[string]interface{} `json:"metadataBefore" form:"metadataBefore"`
	MetadataAfter  map[string]interface{} `json:"metadataAfter" form:"metadataAfter"`
	// MaxDiffs 差异保留上限，0 表示使用服务配置
	MaxDiffs int `json:"maxDiffs" form:"maxDiffs"`
}

// DiffGetRequest 获取单条差异的请求参数
type DiffGetRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// DiffListRequest 按页面获取差异列表的请求参数
// Latest 大于 0 时只返回最新的 n 条（仍为升序）
type DiffListRequest struct {
	RecordID string `json:"recordId" form:"recordId" binding:"required"`
	Latest   int    `json:"latest" form:"latest"`
}

// DiffListByActorRequest 按操作者获取差异列表的请求参数
type DiffListByActorRequest struct {
	ActorID string `json:"actorId" form:"actorId" binding:"required"`
	Latest  int    `json:"latest" form:"latest"`
}

// DiffClearRequest 清空页面差异的请求参数
type DiffClearRequest struct {
	RecordID string `json:"recordId" form:"recordId" binding:"required"`
}

// DiffRevertRequest 回滚页面的请求参数
// Scope 为空时默认 both
type DiffRevertRequest struct {
	ID    string `json:"id" form:"id" binding:"required"`
	Scope string `json:"scope" form:"scope" binding:"omitempty,oneof=content data both"`
}

// RevertResultDTO 回滚结果
type RevertResultDTO struct {
	RecordID    string                 `json:"recordId"`
	DiffID      string                 `json:"diffId"`
	Scope       string                 `json:"scope"`
	PrunedCount int64                  `json:"prunedCount"`
	Content     string                 `json:"content"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// MetadataDiffRequest 元数据差异比较的请求参数
type MetadataDiffRequest struct {
	Before map[string]interface{} `json:"before" form:"before"`
	After  map[string]interface{} `json:"after" form:"after"`
}

// MetadataDiffDTO 元数据差异结果
type MetadataDiffDTO struct {
	Changes []diff.FieldChange `json:"changes"`
}

// DiffRenderRequest 差异 HTML 渲染的请求参数
// WordLevel 与 SideBySide 缺省时按默认渲染选项处理
type DiffRenderRequest struct {
	Patch      string `json:"patch" form:"patch"`
	WordLevel  *bool  `json:"wordLevel" form:"wordLevel"`
	SideBySide *bool  `json:"sideBySide" form:"sideBySide"`
}

// RenderedDiffDTO 渲染后的差异视图
type RenderedDiffDTO struct {
	HTML string `json:"html"`
}
