package model

import "time"

// OvertimeRequest 加班申请 — 对应 overtime_requests
// 仅 approved 状态参与 DTR 生成；同日多条申请的时长累加
type OvertimeRequest struct {
	OvertimeRequestID uint      `gorm:"primaryKey"                                  json:"overtime_request_id"`
	UserID            uint      `gorm:"not null"                                    json:"user_id"`
	Date              time.Time `gorm:"type:date;not null"                          json:"date"`
	StartTime         string    `gorm:"type:varchar(5);not null"                    json:"start_time"`
	EndTime           string    `gorm:"type:varchar(5);not null"                    json:"end_time"`
	Reason            string    `gorm:"type:varchar(500)"                           json:"reason,omitempty"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewedBy        *uint     `json:"reviewed_by,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (OvertimeRequest) TableName() string { return "overtime_requests" }
