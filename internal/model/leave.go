package model

import "time"

// LeaveRequest 请假申请 — 对应 leave_requests
// [start_date, end_date] 闭区间；仅 approved 状态参与 DTR 生成
type LeaveRequest struct {
	LeaveRequestID uint      `gorm:"primaryKey"                                  json:"leave_request_id"`
	UserID         uint      `gorm:"not null"                                    json:"user_id"`
	Type           string    `gorm:"type:varchar(30);not null"                   json:"type"` // Sick | Vacation | Emergency | ...
	StartDate      time.Time `gorm:"type:date;not null"                          json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null"                          json:"end_date"`
	Reason         string    `gorm:"type:varchar(500)"                           json:"reason,omitempty"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewedBy     *uint     `json:"reviewed_by,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }
