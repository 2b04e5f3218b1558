package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User               UserRepository
	Department         DepartmentRepository
	JobTitle           JobTitleRepository
	Cutoff             CutoffRepository
	ScheduleTemplate   ScheduleTemplateRepository
	ScheduleAssignment ScheduleAssignmentRepository
	ScheduleAdjustment ScheduleAdjustmentRepository
	Attendance         AttendanceRepository
	TimeAdjustment     TimeAdjustmentRepository
	Leave              LeaveRepository
	Overtime           OvertimeRepository
	DTR                DTRRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:                 db,
		User:               NewUserRepo(db),
		Department:         NewDepartmentRepo(db),
		JobTitle:           NewJobTitleRepo(db),
		Cutoff:             NewCutoffRepo(db),
		ScheduleTemplate:   NewScheduleTemplateRepo(db),
		ScheduleAssignment: NewScheduleAssignmentRepo(db),
		ScheduleAdjustment: NewScheduleAdjustmentRepo(db),
		Attendance:         NewAttendanceRepo(db),
		TimeAdjustment:     NewTimeAdjustmentRepo(db),
		Leave:              NewLeaveRepo(db),
		Overtime:           NewOvertimeRepo(db),
		DTR:                NewDTRRepo(db),
	}
}

// BeginTx 开启事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到指定事务的 Repository
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}
