package model

import "time"

// Cutoff 考勤周期表 — 对应 cutoffs
// [start_date, cutoff_date] 闭区间；被已生成的 DTR 引用后仅允许管理性修正（乐观锁保护）
type Cutoff struct {
	CutoffID   uint      `gorm:"primaryKey"                 json:"cutoff_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	StartDate  time.Time `gorm:"type:date;not null"         json:"start_date"`
	CutoffDate time.Time `gorm:"type:date;not null"         json:"cutoff_date"`
	IsActive   bool      `gorm:"not null;default:false"     json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Cutoff) TableName() string { return "cutoffs" }
