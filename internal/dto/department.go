package dto

// ── 部门与职位模块 DTO ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateDepartmentRequest 更新部门请求
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// DepartmentResponse 部门信息响应
type DepartmentResponse struct {
	DepartmentID uint   `json:"department_id"`
	Name         string `json:"name"`
	CreatedAt    string `json:"created_at"`
}

// CreateJobTitleRequest 创建职位请求
type CreateJobTitleRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	DepartmentID uint   `json:"department_id" binding:"required"`
}

// UpdateJobTitleRequest 更新职位请求
type UpdateJobTitleRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	DepartmentID *uint   `json:"department_id"`
}

// JobTitleResponse 职位信息响应
type JobTitleResponse struct {
	JobTitleID   uint   `json:"job_title_id"`
	Name         string `json:"name"`
	DepartmentID uint   `json:"department_id"`
	Department   string `json:"department,omitempty"`
	CreatedAt    string `json:"created_at"`
}
