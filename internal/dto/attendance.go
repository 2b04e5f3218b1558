package dto

// ── 打卡与补卡模块 DTO ──

// ClockInRequest 签到请求
// date / time_in 缺省时取服务器当前日期与时间
type ClockInRequest struct {
	Date   string `json:"date"    binding:"omitempty"`       // "2025-02-03"
	TimeIn string `json:"time_in" binding:"omitempty,len=5"` // "08:00"
}

// ClockOutRequest 签退请求
type ClockOutRequest struct {
	TimeOut string `json:"time_out" binding:"omitempty,len=5"`
}

// AttendanceResponse 打卡记录响应
type AttendanceResponse struct {
	AttendanceID uint    `json:"attendance_id"`
	UserID       uint    `json:"user_id"`
	Date         string  `json:"date"`
	Weekday      string  `json:"weekday"`
	TimeIn       string  `json:"time_in"`
	TimeOut      *string `json:"time_out,omitempty"`
	IsRestDay    bool    `json:"is_rest_day"`
	Remarks      string  `json:"remarks"`
}

// ListAttendanceRequest 打卡记录查询请求
type ListAttendanceRequest struct {
	UserID    uint   `form:"user_id"    binding:"required"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date"   binding:"required"`
}

// CreateTimeAdjustmentRequest 创建补卡请求
type CreateTimeAdjustmentRequest struct {
	UserID  uint   `json:"user_id"  binding:"required"`
	Date    string `json:"date"     binding:"required"`
	TimeIn  string `json:"time_in"  binding:"required,len=5"`
	TimeOut string `json:"time_out" binding:"required,len=5"`
	Reason  string `json:"reason"   binding:"omitempty,max=500"`
}

// TimeAdjustmentResponse 补卡响应
type TimeAdjustmentResponse struct {
	TimeAdjustmentID uint   `json:"time_adjustment_id"`
	UserID           uint   `json:"user_id"`
	Date             string `json:"date"`
	TimeIn           string `json:"time_in"`
	TimeOut          string `json:"time_out"`
	Reason           string `json:"reason,omitempty"`
	CreatedAt        string `json:"created_at"`
}
