package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/service"
	pkgerrors "timecard/backend/pkg/errors"
	"timecard/backend/pkg/response"
)

// CutoffHandler 考勤周期模块 HTTP 处理器
type CutoffHandler struct {
	cutoffSvc service.CutoffService
}

// NewCutoffHandler 创建 CutoffHandler
func NewCutoffHandler(cutoffSvc service.CutoffService) *CutoffHandler {
	return &CutoffHandler{cutoffSvc: cutoffSvc}
}

// CreateCutoff 创建考勤周期
// POST /api/v1/cutoffs
func (h *CutoffHandler) CreateCutoff(c *gin.Context) {
	var req dto.CreateCutoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cutoff, err := h.cutoffSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCutoffError(c, err)
		return
	}

	response.Created(c, "创建成功", cutoff)
}

// GetCutoff 获取考勤周期详情
// GET /api/v1/cutoffs/:id
func (h *CutoffHandler) GetCutoff(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	cutoff, err := h.cutoffSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCutoffError(c, err)
		return
	}

	response.OK(c, "查询成功", cutoff)
}

// GetActiveCutoff 获取当前启用的考勤周期
// GET /api/v1/cutoffs/active
func (h *CutoffHandler) GetActiveCutoff(c *gin.Context) {
	cutoff, err := h.cutoffSvc.GetActive(c.Request.Context())
	if err != nil {
		h.handleCutoffError(c, err)
		return
	}

	response.OK(c, "查询成功", cutoff)
}

// ListCutoffs 获取考勤周期列表
// GET /api/v1/cutoffs
func (h *CutoffHandler) ListCutoffs(c *gin.Context) {
	cutoffs, err := h.cutoffSvc.List(c.Request.Context())
	if err != nil {
		h.handleCutoffError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": cutoffs})
}

// UpdateCutoff 更新考勤周期（乐观锁，请求需携带 version）
// PUT /api/v1/cutoffs/:id
func (h *CutoffHandler) UpdateCutoff(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCutoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败，version 不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cutoff, err := h.cutoffSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCutoffError(c, err)
		return
	}

	response.OK(c, "更新成功", cutoff)
}

// ActivateCutoff 启用考勤周期（互斥，之前启用的自动停用）
// PUT /api/v1/cutoffs/:id/activate
func (h *CutoffHandler) ActivateCutoff(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cutoffSvc.Activate(c.Request.Context(), id, callerID); err != nil {
		h.handleCutoffError(c, err)
		return
	}

	response.OK(c, "启用成功", nil)
}

// DeleteCutoff 删除考勤周期
// DELETE /api/v1/cutoffs/:id
func (h *CutoffHandler) DeleteCutoff(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cutoffSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleCutoffError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// handleCutoffError 统一处理考勤周期模块业务错误
func (h *CutoffHandler) handleCutoffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCutoffNotFound),
		errors.Is(err, service.ErrNoActiveCutoff):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCutoffDateInvalid),
		errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, "考勤周期已被其他请求修改，请刷新后重试")
	default:
		response.InternalError(c, err.Error())
	}
}
