package api_router

import (
	"context"

	"github.com/haierkeys/page-revision-service/internal/app"
	"github.com/haierkeys/page-revision-service/internal/dto"
	"github.com/haierkeys/page-revision-service/internal/middleware"
	pkgapp "github.com/haierkeys/page-revision-service/pkg/app"
	"github.com/haierkeys/page-revision-service/pkg/code"
	apperrors "github.com/haierkeys/page-revision-service/pkg/errors"
	"github.com/haierkeys/page-revision-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageHandler page API router handler
// PageHandler 页面 API 路由处理器
// Uses App Container to inject dependencies, supports unified error handling
// 使用 App Container 注入依赖，支持统一错误处理
type PageHandler struct {
	*Handler
}

// NewPageHandler creates PageHandler instance
// NewPageHandler 创建 PageHandler 实例
func NewPageHandler(a *app.App) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(a),
	}
}

// Get retrieves a single page
// @Summary Get page
// @Description Get a page's current content and metadata by record ID.
// @Description 根据记录 ID 获取页面当前内容与元数据。
// @Tags Page
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query string true "Record ID"
// @Success 200 {object} pkgapp.Res{data=dto.PageDTO} "Success"
// @Router /api/page [get]
func (h *PageHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	page, err := h.App.PageService.Get(ctx, params.RecordID)
	if err != nil {
		h.logError(ctx, "PageHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// CreateOrUpdate creates a page or records a diff and updates it
// @Summary Create or update page
// @Description Create a page on first write; later writes record a diff of the change and update the page.
// @Description 首次写入创建页面；后续写入记录本次修改的差异并更新页面。
// @Tags Page
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.PageSetRequest true "Page Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.PageDTO} "Success"
// @Router /api/page [post]
func (h *PageHandler) CreateOrUpdate(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageSetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.CreateOrUpdate.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actorID := pkgapp.GetActorID(c)
	if actorID == "" {
		h.App.Logger().Error("PageHandler.CreateOrUpdate err empty actorId")
		response.ToResponse(code.ErrorInvalidActorAuthToken)
		return
	}

	ctx := c.Request.Context()

	page, err := h.App.PageService.Set(ctx, actorID, params)
	if err != nil {
		h.logError(ctx, "PageHandler.CreateOrUpdate", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(page))
}

// Delete removes a page and its diff history
// @Summary Delete page
// @Description Delete a page together with all diffs recorded for it.
// @Description 删除页面及其全部差异记录。
// @Tags Page
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query string true "Record ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/page [delete]
func (h *PageHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PageDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.PageService.Delete(ctx, params.RecordID); err != nil {
		h.logError(ctx, "PageHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List retrieves pages with pagination
// @Summary List pages
// @Description Get tracked pages ordered by last update, with pagination.
// @Description 按最近更新排序分页获取已跟踪的页面。
// @Tags Page
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param page query int false "Page Number"
// @Param page_size query int false "Page Size"
// @Success 200 {object} pkgapp.Res{data=[]dto.PageDTO} "Success"
// @Router /api/pages [get]
func (h *PageHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	pager := &pkgapp.Pager{
		Page:     pkgapp.GetPage(c),
		PageSize: pkgapp.GetPageSize(c),
	}

	ctx := c.Request.Context()

	pages, total, err := h.App.PageService.List(ctx, pager)
	if err != nil {
		h.logError(ctx, "PageHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, pages, int(total))
}

// logError 记录带 Trace ID 的错误日志
func (h *PageHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, traceID),
	)
}
