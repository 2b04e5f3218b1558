package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ShiftTime 单个工作日的班次时间（"HH:MM" 格式）
type ShiftTime struct {
	In  string `json:"in"`
	Out string `json:"out"`
}

// ── PostgreSQL JSONB 自定义类型 ──

// ScheduleDays 周班表映射：星期名（"Monday"…"Sunday"）→ 班次时间。
// 缺失的星期表示该日为休息日。实现 GORM Scanner/Valuer 接口，对应 JSONB 列。
type ScheduleDays map[string]ShiftTime

// Scan 将 JSONB 文本解析为 ScheduleDays
func (d *ScheduleDays) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("ScheduleDays.Scan: unsupported type %T", src)
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return fmt.Errorf("ScheduleDays.Scan: invalid json: %w", err)
	}
	return nil
}

// Value 将 ScheduleDays 序列化为 JSONB 文本
func (d ScheduleDays) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// ScheduleTemplate 周期性班表模板 — 对应 schedule_templates
type ScheduleTemplate struct {
	ScheduleTemplateID uint         `gorm:"primaryKey"                 json:"schedule_template_id"`
	Title              string       `gorm:"type:varchar(100);not null" json:"title"`
	Days               ScheduleDays `gorm:"type:jsonb;not null"        json:"days"`
	IsActive           bool         `gorm:"not null;default:true"      json:"is_active"`
	SoftDeleteModel
}

func (ScheduleTemplate) TableName() string { return "schedule_templates" }

// UserScheduleAssignment 员工班表指派 — 对应 user_schedule_assignments
// 同一员工可存在多条指派；生效日期最晚且不超过目标日期者生效
type UserScheduleAssignment struct {
	AssignmentID       uint      `gorm:"primaryKey"         json:"assignment_id"`
	UserID             uint      `gorm:"not null"           json:"user_id"`
	ScheduleTemplateID uint      `gorm:"not null"           json:"schedule_template_id"`
	EffectivityDate    time.Time `gorm:"type:date;not null" json:"effectivity_date"`
	BaseModel

	// 关联
	Template *ScheduleTemplate `gorm:"foreignKey:ScheduleTemplateID;references:ScheduleTemplateID" json:"template,omitempty"`
	User     *User             `gorm:"foreignKey:UserID;references:UserID"                         json:"user,omitempty"`
}

func (UserScheduleAssignment) TableName() string { return "user_schedule_assignments" }

// ScheduleAdjustment 单日班表调整 — 对应 schedule_adjustments
// approved 状态的调整对当日班表拥有最高优先级
type ScheduleAdjustment struct {
	ScheduleAdjustmentID uint      `gorm:"primaryKey"                                  json:"schedule_adjustment_id"`
	UserID               uint      `gorm:"not null"                                    json:"user_id"`
	Date                 time.Time `gorm:"type:date;not null"                          json:"date"`
	TimeIn               string    `gorm:"type:varchar(5);not null"                    json:"time_in"`
	TimeOut              string    `gorm:"type:varchar(5);not null"                    json:"time_out"`
	Reason               string    `gorm:"type:varchar(500)"                           json:"reason,omitempty"`
	Status               string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"` // pending | approved | rejected | cancelled
	ReviewedBy           *uint     `json:"reviewed_by,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (ScheduleAdjustment) TableName() string { return "schedule_adjustments" }
