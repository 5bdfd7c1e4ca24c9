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

// PageDiffHandler 页面差异 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type PageDiffHandler struct {
	*Handler
}

// NewPageDiffHandler 创建 PageDiffHandler 实例
func NewPageDiffHandler(a *app.App) *PageDiffHandler {
	return &PageDiffHandler{
		Handler: NewHandler(a),
	}
}

// Insert records one page modification as a diff
// @Summary Record page diff
// @Description Record the before/after state of one page modification as a diff, pruning oldest entries past the retention bound.
// @Description 将一次页面修改的前后状态记录为差异，超出保留上限时裁剪最旧条目。
// @Tags PageDiff
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.DiffInsertRequest true "Diff Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.PageDiffDTO} "Success"
// @Router /api/diff [post]
func (h *PageDiffHandler) Insert(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DiffInsertRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageDiffHandler.Insert.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	actorID := pkgapp.GetActorID(c)
	if actorID == "" {
		h.App.Logger().Error("PageDiffHandler.Insert err empty actorId")
		response.ToResponse(code.ErrorInvalidActorAuthToken)
		return
	}

	ctx := c.Request.Context()

	diff, err := h.App.PageDiffService.Insert(ctx, actorID, params)
	if err != nil {
		h.logError(ctx, "PageDiffHandler.Insert", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diff))
}

// Get retrieves a single diff
// @Summary Get diff
// @Description Get one recorded diff by its ID.
// @Description 根据差异 ID 获取单条差异记录。
// @Tags PageDiff
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query string true "Diff ID"
// @Success 200 {object} pkgapp.Res{data=dto.PageDiffDTO} "Success"
// @Router /api/diff [get]
func (h *PageDiffHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DiffGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageDiffHandler.Get.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	diff, err := h.App.PageDiffService.Get(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "PageDiffHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diff))
}

// ListByRecord retrieves a page's diff history
// @Summary List page diffs
// @Description Get a page's diffs ascending by creation time, optionally only the latest N.
// @Description 按创建时间升序获取页面的差异列表，可只取最新 N 条。
// @Tags PageDiff
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param params query dto.DiffListRequest true "Query Parameters"
// @Success 200 {object} pkgapp.Res{data=[]dto.PageDiffDTO} "Success"
// @Router /api/diffs [get]
func (h *PageDiffHandler) ListByRecord(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DiffListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageDiffHandler.ListByRecord.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	diffs, err := h.App.PageDiffService.ListByRecord(ctx, params)
	if err != nil {
		h.logError(ctx, "PageDiffHandler.ListByRecord", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diffs))
}

// ListByActor retrieves an actor's diff history
// @Summary List actor diffs
// @Description Get the diffs one actor recorded across all pages, ascending by creation time.
// @Description 按创建时间升序获取某操作者在所有页面上记录的差异。
// @Tags PageDiff
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param params query dto.DiffListByActorRequest true "Query Parameters"
// @Success 200 {object} pkgapp.Res{data=[]dto.PageDiffDTO} "Success"
// @Router /api/diffs/actor [get]
func (h *PageDiffHandler) ListByActor(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DiffListByActorRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageDiffHandler.ListByActor.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	diffs, err := h.App.PageDiffService.ListByActor(ctx, params)
	if err != nil {
		h.logError(ctx, "PageDiffHandler.ListByActor", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diffs))
}

// Clear removes all diffs of a page
// @Summary Clear page diffs
// @Description Delete every diff recorded for a page, keeping the page itself.
// @Description 删除页面的全部差异记录，页面本身保留。
// @Tags PageDiff
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Produce json
// @Param id query string true "Record ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/diffs [delete]
func (h *PageDiffHandler) Clear(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DiffClearRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageDiffHandler.Clear.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.PageDiffService.Clear(ctx, params.RecordID); err != nil {
		h.logError(ctx, "PageDiffHandler.Clear", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Revert restores a page to the state captured by a diff
// @Summary Revert page
// @Description Restore a page to a diff's before state. Scope selects content, data, or both; diffs newer than the target are pruned.
// @Description 将页面恢复到某条差异的前置状态。作用域可选 content、data 或 both，晚于目标的差异会被裁剪。
// @Tags PageDiff
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.DiffRevertRequest true "Revert Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.RevertResultDTO} "Success"
// @Router /api/diff/revert [put]
func (h *PageDiffHandler) Revert(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DiffRevertRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageDiffHandler.Revert.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.PageDiffService.Revert(ctx, params.ID, params.Scope)
	if err != nil {
		h.logError(ctx, "PageDiffHandler.Revert", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// MetadataDiff compares two metadata snapshots field by field
// @Summary Compare metadata
// @Description Compare two metadata snapshots and return labeled per-field changes. Bookkeeping fields are skipped.
// @Description 比较两个元数据快照并返回带标签的逐字段变更，记账字段会被跳过。
// @Tags PageDiff
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.MetadataDiffRequest true "Snapshots"
// @Success 200 {object} pkgapp.Res{data=dto.MetadataDiffDTO} "Success"
// @Router /api/diff/metadata [post]
func (h *PageDiffHandler) MetadataDiff(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.MetadataDiffRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageDiffHandler.MetadataDiff.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	changes := h.App.PageDiffService.MetadataDifferences(params.Before, params.After)
	response.ToResponse(code.Success.WithData(dto.MetadataDiffDTO{Changes: changes}))
}

// Render renders a recorded patch as an HTML view
// @Summary Render diff HTML
// @Description Render a unified diff patch as an HTML table, optionally side by side with word-level highlighting.
// @Description 将统一差异补丁渲染为 HTML 表格，可选并排展示与词级高亮。
// @Tags PageDiff
// @Security ActorAuthToken
// @Param token header string true "Auth Token"
// @Accept json
// @Produce json
// @Param params body dto.DiffRenderRequest true "Render Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.RenderedDiffDTO} "Success"
// @Router /api/diff/render [post]
func (h *PageDiffHandler) Render(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DiffRenderRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PageDiffHandler.Render.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	html := h.App.PageDiffService.RenderDiffHTML(params)
	response.ToResponse(code.Success.WithData(dto.RenderedDiffDTO{HTML: html}))
}

// logError 记录带 Trace ID 的错误日志
func (h *PageDiffHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, traceID),
	)
}
