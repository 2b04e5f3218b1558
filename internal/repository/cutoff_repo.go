package repository

import (
	"context"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
	pkgerrors "timecard/backend/pkg/errors"
)

// CutoffRepository 考勤周期数据访问接口
type CutoffRepository interface {
	Create(ctx context.Context, cutoff *model.Cutoff) error
	GetByID(ctx context.Context, id uint) (*model.Cutoff, error)
	GetActive(ctx context.Context) (*model.Cutoff, error)
	List(ctx context.Context) ([]model.Cutoff, error)
	Update(ctx context.Context, cutoff *model.Cutoff) error
	Delete(ctx context.Context, id uint, deletedBy uint) error
	ClearActive(ctx context.Context) error
}

type cutoffRepo struct {
	db *gorm.DB
}

// NewCutoffRepo 创建 CutoffRepository 实例
func NewCutoffRepo(db *gorm.DB) CutoffRepository {
	return &cutoffRepo{db: db}
}

func (r *cutoffRepo) Create(ctx context.Context, cutoff *model.Cutoff) error {
	return r.db.WithContext(ctx).Create(cutoff).Error
}

func (r *cutoffRepo) GetByID(ctx context.Context, id uint) (*model.Cutoff, error) {
	var cutoff model.Cutoff
	err := r.db.WithContext(ctx).
		Where("cutoff_id = ?", id).
		First(&cutoff).Error
	if err != nil {
		return nil, err
	}
	return &cutoff, nil
}

func (r *cutoffRepo) GetActive(ctx context.Context) (*model.Cutoff, error) {
	var cutoff model.Cutoff
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&cutoff).Error
	if err != nil {
		return nil, err
	}
	return &cutoff, nil
}

func (r *cutoffRepo) List(ctx context.Context) ([]model.Cutoff, error) {
	var cutoffs []model.Cutoff
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&cutoffs).Error
	return cutoffs, err
}

// Update 乐观锁更新：考勤周期可能已被生成的 DTR 引用，并发修正必须显式失败
func (r *cutoffRepo) Update(ctx context.Context, cutoff *model.Cutoff) error {
	oldVersion := cutoff.Version
	result := r.db.WithContext(ctx).
		Model(cutoff).
		Where("cutoff_id = ? AND version = ?", cutoff.CutoffID, oldVersion).
		Updates(map[string]interface{}{
			"name":        cutoff.Name,
			"start_date":  cutoff.StartDate,
			"cutoff_date": cutoff.CutoffDate,
			"is_active":   cutoff.IsActive,
			"updated_by":  cutoff.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	cutoff.Version = oldVersion + 1
	return nil
}

func (r *cutoffRepo) Delete(ctx context.Context, id uint, deletedBy uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Cutoff{}).
		Where("cutoff_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// ClearActive 将所有考勤周期的 is_active 置为 false
func (r *cutoffRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.Cutoff{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}
