package dto

// ── 员工模块 DTO ──

// CreateUserRequest 创建员工请求
type CreateUserRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	Email        string `json:"email"         binding:"required,email"`
	EmployeeNo   string `json:"employee_no"   binding:"required,max=50"`
	Role         string `json:"role"          binding:"required,oneof=admin hr employee"`
	DepartmentID *uint  `json:"department_id"`
	JobTitleID   *uint  `json:"job_title_id"`
}

// UpdateUserRequest 更新员工请求
type UpdateUserRequest struct {
	Name             *string `json:"name"              binding:"omitempty,min=2,max=100"`
	Email            *string `json:"email"             binding:"omitempty,email"`
	Role             *string `json:"role"              binding:"omitempty,oneof=admin hr employee"`
	DepartmentID     *uint   `json:"department_id"`
	JobTitleID       *uint   `json:"job_title_id"`
	EmploymentStatus *string `json:"employment_status" binding:"omitempty,oneof=active inactive"`
}

// UserResponse 员工信息响应
type UserResponse struct {
	UserID           uint    `json:"user_id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	EmployeeNo       string  `json:"employee_no"`
	Role             string  `json:"role"`
	Department       *string `json:"department,omitempty"`
	JobTitle         *string `json:"job_title,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	CreatedAt        string  `json:"created_at"`
}

// UserListResponse 员工分页响应
type UserListResponse struct {
	Total int64          `json:"total"`
	Items []UserResponse `json:"items"`
}
