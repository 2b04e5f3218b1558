package dto

// ── DTR 模块 DTO ──

// GenerateDTRRequest DTR 生成请求
// 两个字段用指针以区分「缺失」与「零值」：缺失返回 400
type GenerateDTRRequest struct {
	UserID   *uint `json:"user_id"   binding:"required"`
	CutoffID *uint `json:"cutoff_id" binding:"required"`
}

// ListDTRRequest DTR 查询请求
type ListDTRRequest struct {
	UserID   uint `form:"user_id"   binding:"required"`
	CutoffID uint `form:"cutoff_id" binding:"required"`
}

// DTRRecordResponse 单日考勤记录响应
type DTRRecordResponse struct {
	DTRRecordID  uint    `json:"dtr_record_id"`
	UserID       uint    `json:"user_id"`
	CutoffID     uint    `json:"cutoff_id"`
	Date         string  `json:"date"`
	WorkShift    string  `json:"work_shift"`
	IsRestDay    bool    `json:"is_rest_day"`
	TimeIn       *string `json:"time_in"`
	TimeOut      *string `json:"time_out"`
	RegularHours float64 `json:"regular_hours"`
	LateHours    float64 `json:"late_hours"`
	Undertime    float64 `json:"undertime"`
	Overtime     float64 `json:"overtime"`
	Remarks      string  `json:"remarks"`
}
