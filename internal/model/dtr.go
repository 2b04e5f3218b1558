package model

import "time"

// DTRRecord 日考勤记录 — 对应 dtr_records
// 派生数据：生命周期完全由一次生成调用持有，重新生成时整组替换，禁止手工编辑
type DTRRecord struct {
	DTRRecordID  uint      `gorm:"primaryKey"                            json:"dtr_record_id"`
	UserID       uint      `gorm:"not null"                              json:"user_id"`
	CutoffID     uint      `gorm:"not null"                              json:"cutoff_id"`
	Date         time.Time `gorm:"type:date;not null"                    json:"date"`
	WorkShift    string    `gorm:"type:varchar(100);not null"            json:"work_shift"`
	IsRestDay    bool      `gorm:"not null;default:false"                json:"is_rest_day"`
	TimeIn       *string   `gorm:"type:varchar(5)"                       json:"time_in,omitempty"`
	TimeOut      *string   `gorm:"type:varchar(5)"                       json:"time_out,omitempty"`
	RegularHours float64   `gorm:"type:numeric(6,2);not null;default:0"  json:"regular_hours"`
	LateHours    float64   `gorm:"type:numeric(6,2);not null;default:0"  json:"late_hours"`
	Undertime    float64   `gorm:"type:numeric(6,2);not null;default:0"  json:"undertime"`
	Overtime     float64   `gorm:"type:numeric(6,2);not null;default:0"  json:"overtime"`
	Remarks      string    `gorm:"type:varchar(100);not null;default:''" json:"remarks"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`
}

func (DTRRecord) TableName() string { return "dtr_records" }
