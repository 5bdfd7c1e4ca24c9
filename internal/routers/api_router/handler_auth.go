package api_router

import (
	"context"

	"github.com/haierkeys/page-revision-service/internal/app"
	"github.com/haierkeys/page-revision-service/internal/dto"
	"github.com/haierkeys/page-revision-service/internal/middleware"
	pkgapp "github.com/haierkeys/page-revision-service/pkg/app"
	"github.com/haierkeys/page-revision-service/pkg/code"
	"github.com/haierkeys/page-revision-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler auth API router handler
// AuthHandler 认证 API 路由处理器
// Uses App Container to inject dependencies
// 使用 App Container 注入依赖
type AuthHandler struct {
	*Handler
}

// NewAuthHandler creates AuthHandler instance
// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(a *app.App) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(a),
	}
}

// TokenIssue issues an actor auth token
// @Summary Issue actor auth token
// @Description Exchange the service security key for a signed actor token.
// @Description 使用服务安全密钥换取签名的操作者 Token。
// @Tags Auth
// @Accept json
// @Produce json
// @Param params body dto.AuthTokenRequest true "Token Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.AuthTokenDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Invalid Security Key"
// @Router /api/auth/token [post]
func (h *AuthHandler) TokenIssue(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AuthTokenRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AuthHandler.TokenIssue.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	if params.SecurityKey != h.App.Config().Security.AuthTokenKey {
		h.App.Logger().Warn("AuthHandler.TokenIssue invalid security key",
			zap.String(logger.FieldActorID, params.ActorID),
			zap.String("ip", pkgapp.GetRequestIP(c)))
		response.ToResponse(code.ErrorInvalidActorAuthToken)
		return
	}

	token, err := h.App.TokenManager.Generate(params.ActorID, params.Name, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(c.Request.Context(), "AuthHandler.TokenIssue", err)
		response.ToResponse(code.ErrorAuthTokenGenerate.WithDetails(err.Error()))
		return
	}

	response.ToResponse(code.Success.WithData(dto.AuthTokenDTO{
		Token:   token,
		ActorID: params.ActorID,
	}))
}

// logError 记录带 Trace ID 的错误日志
func (h *AuthHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, traceID),
	)
}
