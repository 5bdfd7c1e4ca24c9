package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldActorID 操作者 ID 字段
	FieldActorID = "actorId"

	// FieldRecordID 页面记录 ID 字段
	FieldRecordID = "recordId"

	// FieldDiffID 差异记录 ID 字段
	FieldDiffID = "diffId"

	// FieldScope 回滚作用域字段
	FieldScope = "scope"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldCount 数量字段
	FieldCount = "count"
)
