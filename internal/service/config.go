// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	App AppServiceConfig // App related config // 应用相关配置
}

// AppServiceConfig app service configuration
// AppServiceConfig 应用服务配置
type AppServiceConfig struct {
	RetentionMaxDiffs      int    // Diff versions to keep per page // 每个页面保留的差异版本数
	RetentionSweepInterval string // Retention sweep interval (e.g., 1h, 30m, 1d) // 保留清扫间隔（支持格式：1h、30m、1d）
}
