package dto

// ── 考勤周期模块 DTO ──

// CreateCutoffRequest 创建考勤周期请求
type CreateCutoffRequest struct {
	Name       string `json:"name"        binding:"required,min=2,max=100"`
	StartDate  string `json:"start_date"  binding:"required"` // "2025-02-01"
	CutoffDate string `json:"cutoff_date" binding:"required"` // "2025-02-15"
	IsActive   bool   `json:"is_active"`
}

// UpdateCutoffRequest 更新考勤周期请求
type UpdateCutoffRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=100"`
	StartDate  *string `json:"start_date"`
	CutoffDate *string `json:"cutoff_date"`
	IsActive   *bool   `json:"is_active"`
	Version    int     `json:"version"     binding:"required,min=1"`
}

// CutoffResponse 考勤周期响应
type CutoffResponse struct {
	CutoffID   uint   `json:"cutoff_id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	CutoffDate string `json:"cutoff_date"`
	IsActive   bool   `json:"is_active"`
	Version    int    `json:"version"`
	CreatedAt  string `json:"created_at"`
}
