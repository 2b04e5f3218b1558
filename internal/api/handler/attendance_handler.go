package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/service"
	"timecard/backend/pkg/response"
)

// AttendanceHandler 打卡模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// ClockIn 签到（当前登录用户）
// POST /api/v1/attendance/clock-in
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	var req dto.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	punch, err := h.attendanceSvc.ClockIn(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, "签到成功", punch)
}

// ClockOut 签退（当前登录用户）
// POST /api/v1/attendance/clock-out
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	var req dto.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	punch, err := h.attendanceSvc.ClockOut(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, "签退成功", punch)
}

// ListAttendance 查询打卡记录
// GET /api/v1/attendance?user_id=1&start_date=2025-02-01&end_date=2025-02-15
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var req dto.ListAttendanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "user_id、start_date、end_date 不能为空")
		return
	}

	punches, err := h.attendanceSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": punches})
}

// handleAttendanceError 统一处理打卡模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrPunchStillOpen),
		errors.Is(err, service.ErrNoOpenPunch):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
