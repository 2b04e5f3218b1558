package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/service"
	"timecard/backend/pkg/response"
)

// LeaveHandler 请假模块 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// CreateLeave 创建请假申请
// POST /api/v1/leaves
func (h *LeaveHandler) CreateLeave(c *gin.Context) {
	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	leave, err := h.leaveSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.Created(c, "创建成功", leave)
}

// ListLeaves 查询某员工的请假申请，可按状态过滤
// GET /api/v1/leaves?user_id=1&status=pending
func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	raw := c.Query("user_id")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, "无效的 user_id")
		return
	}

	leaves, err := h.leaveSvc.ListByUser(c.Request.Context(), uint(userID), c.Query("status"))
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": leaves})
}

// ApproveLeave 批准请假申请
// PUT /api/v1/leaves/:id/approve
func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	h.reviewLeave(c, true)
}

// RejectLeave 驳回请假申请
// PUT /api/v1/leaves/:id/reject
func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	h.reviewLeave(c, false)
}

func (h *LeaveHandler) reviewLeave(c *gin.Context, approve bool) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	leave, err := h.leaveSvc.Review(c.Request.Context(), id, approve, callerID)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, "审批成功", leave)
}

// CancelLeave 撤回请假申请
// PUT /api/v1/leaves/:id/cancel
func (h *LeaveHandler) CancelLeave(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.leaveSvc.Cancel(c.Request.Context(), id, callerID); err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, "撤回成功", nil)
}

// handleLeaveError 统一处理请假模块业务错误
func (h *LeaveHandler) handleLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrLeaveRangeInvalid),
		errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrLeaveNotPending):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
