package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
)

// AttendanceRepository 打卡数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, punch *model.AttendancePunch) error
	GetByID(ctx context.Context, id uint) (*model.AttendancePunch, error)
	GetOpenByUser(ctx context.Context, userID uint) (*model.AttendancePunch, error)
	ListByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]model.AttendancePunch, error)
	Update(ctx context.Context, punch *model.AttendancePunch) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, punch *model.AttendancePunch) error {
	return r.db.WithContext(ctx).Create(punch).Error
}

func (r *attendanceRepo) GetByID(ctx context.Context, id uint) (*model.AttendancePunch, error) {
	var punch model.AttendancePunch
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		First(&punch).Error
	if err != nil {
		return nil, err
	}
	return &punch, nil
}

// GetOpenByUser 返回该员工最近一条未签退的打卡记录，没有则返回 gorm.ErrRecordNotFound
func (r *attendanceRepo) GetOpenByUser(ctx context.Context, userID uint) (*model.AttendancePunch, error) {
	var punch model.AttendancePunch
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND time_out IS NULL", userID).
		Order("date DESC, attendance_id DESC").
		First(&punch).Error
	if err != nil {
		return nil, err
	}
	return &punch, nil
}

func (r *attendanceRepo) ListByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]model.AttendancePunch, error) {
	var punches []model.AttendancePunch
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Order("date ASC, attendance_id ASC").
		Find(&punches).Error
	return punches, err
}

func (r *attendanceRepo) Update(ctx context.Context, punch *model.AttendancePunch) error {
	return r.db.WithContext(ctx).Save(punch).Error
}
