package dto

// ── 班表模块 DTO ──

// ShiftTimeDTO 单日班次时间
type ShiftTimeDTO struct {
	In  string `json:"in"  binding:"required,len=5"` // "08:00"
	Out string `json:"out" binding:"required,len=5"` // "17:00"
}

// CreateScheduleTemplateRequest 创建班表模板请求
// days 的键为星期名（"Monday"…"Sunday"），缺失的星期为休息日
type CreateScheduleTemplateRequest struct {
	Title string                  `json:"title" binding:"required,min=2,max=100"`
	Days  map[string]ShiftTimeDTO `json:"days"  binding:"required"`
}

// UpdateScheduleTemplateRequest 更新班表模板请求
type UpdateScheduleTemplateRequest struct {
	Title    *string                 `json:"title"     binding:"omitempty,min=2,max=100"`
	Days     map[string]ShiftTimeDTO `json:"days"`
	IsActive *bool                   `json:"is_active"`
}

// ScheduleTemplateResponse 班表模板响应
type ScheduleTemplateResponse struct {
	ScheduleTemplateID uint                    `json:"schedule_template_id"`
	Title              string                  `json:"title"`
	Days               map[string]ShiftTimeDTO `json:"days"`
	IsActive           bool                    `json:"is_active"`
	CreatedAt          string                  `json:"created_at"`
}

// CreateAssignmentRequest 创建排班指派请求
type CreateAssignmentRequest struct {
	UserID             uint   `json:"user_id"              binding:"required"`
	ScheduleTemplateID uint   `json:"schedule_template_id" binding:"required"`
	EffectivityDate    string `json:"effectivity_date"     binding:"required"` // "2025-01-01"
}

// AssignmentResponse 排班指派响应
type AssignmentResponse struct {
	AssignmentID       uint   `json:"assignment_id"`
	UserID             uint   `json:"user_id"`
	ScheduleTemplateID uint   `json:"schedule_template_id"`
	TemplateTitle      string `json:"template_title,omitempty"`
	EffectivityDate    string `json:"effectivity_date"`
	CreatedAt          string `json:"created_at"`
}

// CreateScheduleAdjustmentRequest 创建单日改班请求
type CreateScheduleAdjustmentRequest struct {
	UserID  uint   `json:"user_id"  binding:"required"`
	Date    string `json:"date"     binding:"required"` // "2025-02-03"
	TimeIn  string `json:"time_in"  binding:"required,len=5"`
	TimeOut string `json:"time_out" binding:"required,len=5"`
	Reason  string `json:"reason"   binding:"omitempty,max=500"`
}

// ScheduleAdjustmentResponse 单日改班响应
type ScheduleAdjustmentResponse struct {
	ScheduleAdjustmentID uint   `json:"schedule_adjustment_id"`
	UserID               uint   `json:"user_id"`
	Date                 string `json:"date"`
	TimeIn               string `json:"time_in"`
	TimeOut              string `json:"time_out"`
	Reason               string `json:"reason,omitempty"`
	Status               string `json:"status"`
	ReviewedBy           *uint  `json:"reviewed_by,omitempty"`
	CreatedAt            string `json:"created_at"`
}

// ResolvedShiftResponse 某员工某日的班次解析结果
type ResolvedShiftResponse struct {
	Date      string `json:"date"`
	IsRestDay bool   `json:"is_rest_day"`
	TimeIn    string `json:"time_in,omitempty"`
	TimeOut   string `json:"time_out,omitempty"`
	Source    string `json:"source"` // adjustment | assignment | rest_day
}
