package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/service"
	"timecard/backend/pkg/response"
)

// DepartmentHandler 部门与职位模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ── 部门 ──

// CreateDepartment 创建部门
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.CreateDepartment(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDeptError(c, err)
		return
	}

	response.Created(c, "创建成功", dept)
}

// ListDepartments 获取部门列表
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.deptSvc.ListDepartments(c.Request.Context())
	if err != nil {
		h.handleDeptError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": depts})
}

// UpdateDepartment 更新部门
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.UpdateDepartment(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleDeptError(c, err)
		return
	}

	response.OK(c, "更新成功", dept)
}

// DeleteDepartment 删除部门
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.deptSvc.DeleteDepartment(c.Request.Context(), id, callerID); err != nil {
		h.handleDeptError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// ── 职位 ──

// CreateJobTitle 创建职位
// POST /api/v1/job-titles
func (h *DepartmentHandler) CreateJobTitle(c *gin.Context) {
	var req dto.CreateJobTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	jt, err := h.deptSvc.CreateJobTitle(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDeptError(c, err)
		return
	}

	response.Created(c, "创建成功", jt)
}

// ListJobTitles 获取职位列表，可按部门过滤
// GET /api/v1/job-titles?department_id=1
func (h *DepartmentHandler) ListJobTitles(c *gin.Context) {
	var departmentID *uint
	if raw := c.Query("department_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "无效的 department_id")
			return
		}
		v := uint(id)
		departmentID = &v
	}

	titles, err := h.deptSvc.ListJobTitles(c.Request.Context(), departmentID)
	if err != nil {
		h.handleDeptError(c, err)
		return
	}

	response.OK(c, "查询成功", gin.H{"list": titles})
}

// UpdateJobTitle 更新职位
// PUT /api/v1/job-titles/:id
func (h *DepartmentHandler) UpdateJobTitle(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	jt, err := h.deptSvc.UpdateJobTitle(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleDeptError(c, err)
		return
	}

	response.OK(c, "更新成功", jt)
}

// DeleteJobTitle 删除职位
// DELETE /api/v1/job-titles/:id
func (h *DepartmentHandler) DeleteJobTitle(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.deptSvc.DeleteJobTitle(c.Request.Context(), id, callerID); err != nil {
		h.handleDeptError(c, err)
		return
	}

	response.OK(c, "删除成功", nil)
}

// handleDeptError 统一处理部门与职位模块业务错误
func (h *DepartmentHandler) handleDeptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound),
		errors.Is(err, service.ErrJobTitleNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
