package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
)

// LeaveRepository 请假数据访问接口
type LeaveRepository interface {
	Create(ctx context.Context, req *model.LeaveRequest) error
	GetByID(ctx context.Context, id uint) (*model.LeaveRequest, error)
	ListByUser(ctx context.Context, userID uint, status string) ([]model.LeaveRequest, error)
	ListApprovedOverlapping(ctx context.Context, userID uint, start, end time.Time) ([]model.LeaveRequest, error)
	Update(ctx context.Context, req *model.LeaveRequest) error
}

type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo 创建 LeaveRepository 实例
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, req *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *leaveRepo) GetByID(ctx context.Context, id uint) (*model.LeaveRequest, error) {
	var req model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("leave_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *leaveRepo) ListByUser(ctx context.Context, userID uint, status string) ([]model.LeaveRequest, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var reqs []model.LeaveRequest
	err := db.Order("start_date DESC").Find(&reqs).Error
	return reqs, err
}

// ListApprovedOverlapping 返回与给定日期区间有交集的已批准请假
func (r *leaveRepo) ListApprovedOverlapping(ctx context.Context, userID uint, start, end time.Time) ([]model.LeaveRequest, error) {
	var reqs []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			userID, model.StatusApproved, end, start).
		Order("start_date ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *leaveRepo) Update(ctx context.Context, req *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
