package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/service"
	"timecard/backend/pkg/response"
)

// TimeAdjustmentHandler 补卡模块 HTTP 处理器
type TimeAdjustmentHandler struct {
	taSvc service.TimeAdjustmentService
}

// NewTimeAdjustmentHandler 创建 TimeAdjustmentHandler
func NewTimeAdjustmentHandler(taSvc service.TimeAdjustmentService) *TimeAdjustmentHandler {
	return &TimeAdjustmentHandler{taSvc: taSvc}
}

// CreateTimeAdjustment 创建补卡记录
// POST /api/v1/time-adjustments
func (h *TimeAdjustmentHandler) CreateTimeAdjustment(c *gin.Context) {
	var req dto.CreateTimeAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ta, err := h.taSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTimeAdjustmentError(c, err)
		return
	}

	response.Created(c, "创建成功", ta)
}

// ListTimeAdjustments 查询某员工某区间的补卡记录
// GET /api/v1/time-adjustments?user_id=1&start_date=2025-02-01&end_date=2025-02-15
func (h *TimeAdjustmentHandler) ListTimeAdjustments(c *gin.Context) {
	raw := c.Query("user_id")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, "无效的 user_id")
		return
	}

	tas, err := h.taSvc.ListByUserAndRange(c.Request.Context(), uint(userID), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.handleTimeAdjustmentError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": tas})
}

// DeleteTimeAdjustment 删除补卡记录
// DELETE /api/v1/time-adjustments/:id
func (h *TimeAdjustmentHandler) DeleteTimeAdjustment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTimeAdjustmentError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// handleTimeAdjustmentError 统一处理补卡模块业务错误
func (h *TimeAdjustmentHandler) handleTimeAdjustmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTimeAdjustmentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
