package dto

// ── 加班模块 DTO ──

// CreateOvertimeRequest 创建加班申请
type CreateOvertimeRequest struct {
	UserID    uint   `json:"user_id"    binding:"required"`
	Date      string `json:"date"       binding:"required"`
	StartTime string `json:"start_time" binding:"required,len=5"`
	EndTime   string `json:"end_time"   binding:"required,len=5"`
	Reason    string `json:"reason"     binding:"omitempty,max=500"`
}

// OvertimeResponse 加班申请响应
type OvertimeResponse struct {
	OvertimeRequestID uint   `json:"overtime_request_id"`
	UserID            uint   `json:"user_id"`
	Date              string `json:"date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Reason            string `json:"reason,omitempty"`
	Status            string `json:"status"`
	ReviewedBy        *uint  `json:"reviewed_by,omitempty"`
	CreatedAt         string `json:"created_at"`
}
