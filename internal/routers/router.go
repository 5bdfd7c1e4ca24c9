package routers

import (
	"time"

	"github.com/haierkeys/page-revision-service/internal/app"
	"github.com/haierkeys/page-revision-service/internal/middleware"
	"github.com/haierkeys/page-revision-service/internal/routers/api_router"
	"github.com/haierkeys/page-revision-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/auth/token",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		authHandler := api_router.NewAuthHandler(appContainer)
		pageHandler := api_router.NewPageHandler(appContainer)
		pageDiffHandler := api_router.NewPageDiffHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.POST("/auth/token", authHandler.TokenIssue)

		// 服务端版本与健康检查接口（无需认证）
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).GET("/page", pageHandler.Get)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).POST("/page", pageHandler.CreateOrUpdate)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).DELETE("/page", pageHandler.Delete)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).GET("/pages", pageHandler.List)

		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).POST("/diff", pageDiffHandler.Insert)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).GET("/diff", pageDiffHandler.Get)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).PUT("/diff/revert", pageDiffHandler.Revert)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).POST("/diff/metadata", pageDiffHandler.MetadataDiff)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).POST("/diff/render", pageDiffHandler.Render)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).GET("/diffs", pageDiffHandler.ListByRecord)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).DELETE("/diffs", pageDiffHandler.Clear)
		api.Use(middleware.ActorAuthTokenWithConfig(cfg.Security.AuthTokenKey)).GET("/diffs/actor", pageDiffHandler.ListByActor)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
