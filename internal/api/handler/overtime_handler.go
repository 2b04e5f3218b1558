package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/service"
	"timecard/backend/pkg/response"
)

// OvertimeHandler 加班模块 HTTP 处理器
type OvertimeHandler struct {
	overtimeSvc service.OvertimeService
}

// NewOvertimeHandler 创建 OvertimeHandler
func NewOvertimeHandler(overtimeSvc service.OvertimeService) *OvertimeHandler {
	return &OvertimeHandler{overtimeSvc: overtimeSvc}
}

// CreateOvertime 创建加班申请
// POST /api/v1/overtimes
func (h *OvertimeHandler) CreateOvertime(c *gin.Context) {
	var req dto.CreateOvertimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ot, err := h.overtimeSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleOvertimeError(c, err)
		return
	}

	response.Created(c, "创建成功", ot)
}

// ListOvertimes 查询某员工的加班申请，可按状态过滤
// GET /api/v1/overtimes?user_id=1&status=approved
func (h *OvertimeHandler) ListOvertimes(c *gin.Context) {
	raw := c.Query("user_id")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, "无效的 user_id")
		return
	}

	ots, err := h.overtimeSvc.ListByUser(c.Request.Context(), uint(userID), c.Query("status"))
	if err != nil {
		h.handleOvertimeError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": ots})
}

// ApproveOvertime 批准加班申请
// PUT /api/v1/overtimes/:id/approve
func (h *OvertimeHandler) ApproveOvertime(c *gin.Context) {
	h.reviewOvertime(c, true)
}

// RejectOvertime 驳回加班申请
// PUT /api/v1/overtimes/:id/reject
func (h *OvertimeHandler) RejectOvertime(c *gin.Context) {
	h.reviewOvertime(c, false)
}

func (h *OvertimeHandler) reviewOvertime(c *gin.Context, approve bool) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ot, err := h.overtimeSvc.Review(c.Request.Context(), id, approve, callerID)
	if err != nil {
		h.handleOvertimeError(c, err)
		return
	}

	response.OK(c, "审批成功", ot)
}

// CancelOvertime 撤回加班申请
// PUT /api/v1/overtimes/:id/cancel
func (h *OvertimeHandler) CancelOvertime(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.overtimeSvc.Cancel(c.Request.Context(), id, callerID); err != nil {
		h.handleOvertimeError(c, err)
		return
	}

	response.OK(c, "撤回成功", nil)
}

// handleOvertimeError 统一处理加班模块业务错误
func (h *OvertimeHandler) handleOvertimeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOvertimeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrOvertimeRangeInvalid),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrOvertimeNotPending):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
