package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
)

// OvertimeRepository 加班数据访问接口
type OvertimeRepository interface {
	Create(ctx context.Context, req *model.OvertimeRequest) error
	GetByID(ctx context.Context, id uint) (*model.OvertimeRequest, error)
	ListByUser(ctx context.Context, userID uint, status string) ([]model.OvertimeRequest, error)
	ListApprovedByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]model.OvertimeRequest, error)
	Update(ctx context.Context, req *model.OvertimeRequest) error
}

type overtimeRepo struct {
	db *gorm.DB
}

// NewOvertimeRepo 创建 OvertimeRepository 实例
func NewOvertimeRepo(db *gorm.DB) OvertimeRepository {
	return &overtimeRepo{db: db}
}

func (r *overtimeRepo) Create(ctx context.Context, req *model.OvertimeRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *overtimeRepo) GetByID(ctx context.Context, id uint) (*model.OvertimeRequest, error) {
	var req model.OvertimeRequest
	err := r.db.WithContext(ctx).
		Where("overtime_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *overtimeRepo) ListByUser(ctx context.Context, userID uint, status string) ([]model.OvertimeRequest, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var reqs []model.OvertimeRequest
	err := db.Order("date DESC").Find(&reqs).Error
	return reqs, err
}

func (r *overtimeRepo) ListApprovedByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]model.OvertimeRequest, error) {
	var reqs []model.OvertimeRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND date BETWEEN ? AND ?",
			userID, model.StatusApproved, start, end).
		Order("date ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *overtimeRepo) Update(ctx context.Context, req *model.OvertimeRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
