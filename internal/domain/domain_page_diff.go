package domain

import "time"

// PageDiff 页面差异领域模型
// Seq 在同一页面内单调递增，用于判定差异先后
// MetadataSnapshot 为 {"before":{...},"after":{...}} 的 JSON 文本
type PageDiff struct {
	Seq                   int64
	DiffID                string
	RecordID              string
	ActorID               string
	Patch                 string
	ContentSnapshotBefore string
	MetadataSnapshot      string
	CreatedAt             time.Time
}
