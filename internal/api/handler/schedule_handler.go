package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/service"
	"timecard/backend/pkg/response"
)

// ScheduleHandler 班表模块 HTTP 处理器：模板、指派与单日改班
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ── 班表模板 ──

// CreateTemplate 创建班表模板
// POST /api/v1/schedule-templates
func (h *ScheduleHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateScheduleTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tmpl, err := h.scheduleSvc.CreateTemplate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, "创建成功", tmpl)
}

// GetTemplate 获取班表模板详情
// GET /api/v1/schedule-templates/:id
func (h *ScheduleHandler) GetTemplate(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	tmpl, err := h.scheduleSvc.GetTemplate(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "查询成功", tmpl)
}

// ListTemplates 获取班表模板列表
// GET /api/v1/schedule-templates?include_inactive=true
func (h *ScheduleHandler) ListTemplates(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	tmpls, err := h.scheduleSvc.ListTemplates(c.Request.Context(), includeInactive)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": tmpls})
}

// UpdateTemplate 更新班表模板
// PUT /api/v1/schedule-templates/:id
func (h *ScheduleHandler) UpdateTemplate(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduleTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tmpl, err := h.scheduleSvc.UpdateTemplate(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "更新成功", tmpl)
}

// DeleteTemplate 删除班表模板
// DELETE /api/v1/schedule-templates/:id
func (h *ScheduleHandler) DeleteTemplate(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.DeleteTemplate(c.Request.Context(), id, callerID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// ── 排班指派 ──

// CreateAssignment 创建排班指派
// POST /api/v1/schedule-assignments
func (h *ScheduleHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	asg, err := h.scheduleSvc.CreateAssignment(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, "创建成功", asg)
}

// ListAssignments 获取某员工的排班指派历史
// GET /api/v1/schedule-assignments?user_id=1
func (h *ScheduleHandler) ListAssignments(c *gin.Context) {
	raw := c.Query("user_id")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, "无效的 user_id")
		return
	}

	asgs, err := h.scheduleSvc.ListAssignments(c.Request.Context(), uint(userID))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": asgs})
}

// DeleteAssignment 删除排班指派
// DELETE /api/v1/schedule-assignments/:id
func (h *ScheduleHandler) DeleteAssignment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleSvc.DeleteAssignment(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// ── 单日改班 ──

// CreateAdjustment 创建单日改班申请
// POST /api/v1/schedule-adjustments
func (h *ScheduleHandler) CreateAdjustment(c *gin.Context) {
	var req dto.CreateScheduleAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	adj, err := h.scheduleSvc.CreateAdjustment(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, "创建成功", adj)
}

// ListAdjustments 获取某员工的改班申请，可按状态过滤
// GET /api/v1/schedule-adjustments?user_id=1&status=pending
func (h *ScheduleHandler) ListAdjustments(c *gin.Context) {
	raw := c.Query("user_id")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, "无效的 user_id")
		return
	}

	adjs, err := h.scheduleSvc.ListAdjustments(c.Request.Context(), uint(userID), c.Query("status"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": adjs})
}

// ApproveAdjustment 批准改班申请
// PUT /api/v1/schedule-adjustments/:id/approve
func (h *ScheduleHandler) ApproveAdjustment(c *gin.Context) {
	h.reviewAdjustment(c, true)
}

// RejectAdjustment 驳回改班申请
// PUT /api/v1/schedule-adjustments/:id/reject
func (h *ScheduleHandler) RejectAdjustment(c *gin.Context) {
	h.reviewAdjustment(c, false)
}

func (h *ScheduleHandler) reviewAdjustment(c *gin.Context, approve bool) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	adj, err := h.scheduleSvc.ReviewAdjustment(c.Request.Context(), id, approve, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "审批成功", adj)
}

// CancelAdjustment 撤回改班申请
// PUT /api/v1/schedule-adjustments/:id/cancel
func (h *ScheduleHandler) CancelAdjustment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.CancelAdjustment(c.Request.Context(), id, callerID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "撤回成功", nil)
}

// ResolveShift 查询某员工某日的生效班次
// GET /api/v1/schedule/resolve?user_id=1&date=2025-02-03
func (h *ScheduleHandler) ResolveShift(c *gin.Context) {
	raw := c.Query("user_id")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, "无效的 user_id")
		return
	}
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "date 不能为空")
		return
	}

	shift, err := h.scheduleSvc.ResolveShift(c.Request.Context(), uint(userID), date)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, "查询成功", shift)
}

// handleScheduleError 统一处理班表模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrAdjustmentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrTemplateDaysInvalid),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAdjustmentNotPending):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
