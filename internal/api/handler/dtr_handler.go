package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/service"
	"timecard/backend/pkg/response"
)

// DTRHandler DTR 模块 HTTP 处理器
type DTRHandler struct {
	dtrSvc service.DTRService
}

// NewDTRHandler 创建 DTRHandler
func NewDTRHandler(dtrSvc service.DTRService) *DTRHandler {
	return &DTRHandler{dtrSvc: dtrSvc}
}

// Generate 生成某员工某周期的 DTR
// POST /dtr/generateDTR
func (h *DTRHandler) Generate(c *gin.Context) {
	var req dto.GenerateDTRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "user_id 与 cutoff_id 不能为空")
		return
	}

	records, err := h.dtrSvc.Generate(c.Request.Context(), *req.UserID, *req.CutoffID)
	if err != nil {
		h.handleDTRError(c, err)
		return
	}

	response.OK(c, "DTR 生成成功", records)
}

// List 查询某员工某周期已生成的 DTR
// GET /api/v1/dtr?user_id=1&cutoff_id=2
func (h *DTRHandler) List(c *gin.Context) {
	var req dto.ListDTRRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "user_id 与 cutoff_id 不能为空")
		return
	}

	records, err := h.dtrSvc.List(c.Request.Context(), req.UserID, req.CutoffID)
	if err != nil {
		h.handleDTRError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": records})
}

// handleDTRError 统一处理 DTR 模块业务错误
func (h *DTRHandler) handleDTRError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCutoffNotFound),
		errors.Is(err, service.ErrDTRNotGenerated):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCutoffRangeInvalid),
		errors.Is(err, service.ErrCutoffRangeTooLarge):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrDTRGenerationBusy):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
