package repository

import (
	"context"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
)

// DTRRepository 日考勤记录数据访问接口
type DTRRepository interface {
	ListByUserAndCutoff(ctx context.Context, userID, cutoffID uint) ([]model.DTRRecord, error)
	ReplaceForCutoff(ctx context.Context, userID, cutoffID uint, records []model.DTRRecord) error
}

type dtrRepo struct {
	db *gorm.DB
}

// NewDTRRepo 创建 DTRRepository 实例
func NewDTRRepo(db *gorm.DB) DTRRepository {
	return &dtrRepo{db: db}
}

func (r *dtrRepo) ListByUserAndCutoff(ctx context.Context, userID, cutoffID uint) ([]model.DTRRecord, error) {
	var records []model.DTRRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND cutoff_id = ?", userID, cutoffID).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

// ReplaceForCutoff 在单个事务内先删除该员工在该周期的全部旧记录，再批量写入新记录
// 任何一步失败则整体回滚，不会留下半旧半新的区间
func (r *dtrRepo) ReplaceForCutoff(ctx context.Context, userID, cutoffID uint, records []model.DTRRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND cutoff_id = ?", userID, cutoffID).
			Delete(&model.DTRRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 100).Error
	})
}
