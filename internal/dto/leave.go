package dto

// ── 请假模块 DTO ──

// CreateLeaveRequest 创建请假申请
type CreateLeaveRequest struct {
	UserID    uint   `json:"user_id"    binding:"required"`
	Type      string `json:"type"       binding:"required,max=50"` // "Sick" / "Vacation" 等
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"   binding:"required"`
	Reason    string `json:"reason"     binding:"omitempty,max=500"`
}

// LeaveResponse 请假申请响应
type LeaveResponse struct {
	LeaveRequestID uint   `json:"leave_request_id"`
	UserID         uint   `json:"user_id"`
	Type           string `json:"type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Reason         string `json:"reason,omitempty"`
	Status         string `json:"status"`
	ReviewedBy     *uint  `json:"reviewed_by,omitempty"`
	CreatedAt      string `json:"created_at"`
}
