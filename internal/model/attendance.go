package model

import "time"

// ── 打卡备注 ──

const (
	RemarkOnTime    = "OnTime"
	RemarkLate      = "Late"
	RemarkUndertime = "Undertime"
)

// AttendancePunch 打卡记录 — 对应 attendance_punches
// time_out 为空表示打卡未闭合；同一员工同一时刻至多一条未闭合记录
type AttendancePunch struct {
	AttendanceID uint      `gorm:"primaryKey"                           json:"attendance_id"`
	UserID       uint      `gorm:"not null"                             json:"user_id"`
	Date         time.Time `gorm:"type:date;not null"                   json:"date"`
	Weekday      string    `gorm:"type:varchar(10);not null"            json:"weekday"`
	TimeIn       string    `gorm:"type:varchar(5);not null"             json:"time_in"`
	TimeOut      *string   `gorm:"type:varchar(5)"                      json:"time_out,omitempty"`
	IsRestDay    bool      `gorm:"not null;default:false"               json:"is_rest_day"`
	Remarks      string    `gorm:"type:varchar(50);not null;default:''" json:"remarks"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (AttendancePunch) TableName() string { return "attendance_punches" }

// TimeAdjustment 补卡申请 — 对应 time_adjustments
// 仅用于补齐缺失的打卡时间，不覆盖已有打卡
type TimeAdjustment struct {
	TimeAdjustmentID uint      `gorm:"primaryKey"               json:"time_adjustment_id"`
	UserID           uint      `gorm:"not null"                 json:"user_id"`
	Date             time.Time `gorm:"type:date;not null"       json:"date"`
	TimeIn           string    `gorm:"type:varchar(5);not null" json:"time_in"`
	TimeOut          string    `gorm:"type:varchar(5);not null" json:"time_out"`
	Reason           string    `gorm:"type:varchar(500)"        json:"reason,omitempty"`
	BaseModel
}

func (TimeAdjustment) TableName() string { return "time_adjustments" }
