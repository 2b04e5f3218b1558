package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
)

// TimeAdjustmentRepository 补卡数据访问接口
type TimeAdjustmentRepository interface {
	Create(ctx context.Context, adj *model.TimeAdjustment) error
	GetByID(ctx context.Context, id uint) (*model.TimeAdjustment, error)
	ListByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]model.TimeAdjustment, error)
	Update(ctx context.Context, adj *model.TimeAdjustment) error
	Delete(ctx context.Context, id uint) error
}

type timeAdjustmentRepo struct {
	db *gorm.DB
}

// NewTimeAdjustmentRepo 创建 TimeAdjustmentRepository 实例
func NewTimeAdjustmentRepo(db *gorm.DB) TimeAdjustmentRepository {
	return &timeAdjustmentRepo{db: db}
}

func (r *timeAdjustmentRepo) Create(ctx context.Context, adj *model.TimeAdjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

func (r *timeAdjustmentRepo) GetByID(ctx context.Context, id uint) (*model.TimeAdjustment, error) {
	var adj model.TimeAdjustment
	err := r.db.WithContext(ctx).
		Where("time_adjustment_id = ?", id).
		First(&adj).Error
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

func (r *timeAdjustmentRepo) ListByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]model.TimeAdjustment, error) {
	var adjs []model.TimeAdjustment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Order("date ASC, time_adjustment_id ASC").
		Find(&adjs).Error
	return adjs, err
}

func (r *timeAdjustmentRepo) Update(ctx context.Context, adj *model.TimeAdjustment) error {
	return r.db.WithContext(ctx).Save(adj).Error
}

func (r *timeAdjustmentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("time_adjustment_id = ?", id).
		Delete(&model.TimeAdjustment{}).Error
}
