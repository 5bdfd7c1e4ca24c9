package code

// Success codes
// 成功码
var (
	Success = NewSuss(200, lang{
		en:    "Success",
		zh_cn: "成功",
	})
	SuccessNoChange = NewSuss(201, lang{
		en:    "Success, nothing changed",
		zh_cn: "成功，无变更",
	})
)

// Common error codes
// 通用错误码
var (
	Failed = NewError(1, lang{
		en:    "Failed",
		zh_cn: "失败",
	})
	ErrorInvalidParams = NewError(10000001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorNotFoundAPI = NewError(10000002, lang{
		en:    "API not found",
		zh_cn: "接口不存在",
	})
	ErrorTooManyRequests = NewError(10000003, lang{
		en:    "Too many requests",
		zh_cn: "请求过多",
	})
	ErrorServerInternal = NewError(10000004, lang{
		en:    "Server internal error",
		zh_cn: "服务内部错误",
	})
	ErrorDBQuery = NewError(10000005, lang{
		en:    "Database query error",
		zh_cn: "数据库查询错误",
	})
	ErrorRequestTimeout = NewError(10000006, lang{
		en:    "Request timed out",
		zh_cn: "请求超时",
	})
)

// Auth error codes
// 认证错误码
var (
	ErrorNotActorAuthToken = NewError(10001001, lang{
		en:    "Missing actor auth token",
		zh_cn: "缺少操作者认证令牌",
	})
	ErrorInvalidActorAuthToken = NewError(10001002, lang{
		en:    "Invalid or expired actor auth token",
		zh_cn: "操作者认证令牌无效或已过期",
	})
	ErrorAuthTokenGenerate = NewError(10001003, lang{
		en:    "Failed to generate auth token",
		zh_cn: "生成认证令牌失败",
	})
)

// Page error codes
// 页面错误码
var (
	ErrorPageNotFound = NewError(10002001, lang{
		en:    "Page not found",
		zh_cn: "页面不存在",
	})
	ErrorPageCreateFailed = NewError(10002002, lang{
		en:    "Failed to create page",
		zh_cn: "创建页面失败",
	})
	ErrorPageUpdateFailed = NewError(10002003, lang{
		en:    "Failed to update page",
		zh_cn: "更新页面失败",
	})
	ErrorPageDeleteFailed = NewError(10002004, lang{
		en:    "Failed to delete page",
		zh_cn: "删除页面失败",
	})
)

// Diff and revert error codes
// 差异与回滚错误码
var (
	ErrorDiffNotFound = NewError(10003001, lang{
		en:    "Diff record not found",
		zh_cn: "差异记录不存在",
	})
	ErrorDiffInsertFailed = NewError(10003002, lang{
		en:    "Failed to store diff record",
		zh_cn: "保存差异记录失败",
	})
	ErrorPatchGenerate = NewError(10003003, lang{
		en:    "Failed to generate content patch",
		zh_cn: "生成内容补丁失败",
	})
	ErrorInvalidMetadataStructure = NewError(10003004, lang{
		en:    "Metadata snapshot structure is invalid",
		zh_cn: "元数据快照结构无效",
	})
	ErrorRevertFailed = NewError(10003005, lang{
		en:    "Failed to revert page to snapshot",
		zh_cn: "回滚页面到快照失败",
	})
)
