package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
)

// ScheduleTemplateRepository 班次模板数据访问接口
type ScheduleTemplateRepository interface {
	Create(ctx context.Context, tmpl *model.ScheduleTemplate) error
	GetByID(ctx context.Context, id uint) (*model.ScheduleTemplate, error)
	List(ctx context.Context, includeInactive bool) ([]model.ScheduleTemplate, error)
	Update(ctx context.Context, tmpl *model.ScheduleTemplate) error
	Delete(ctx context.Context, id uint, deletedBy uint) error
}

// ScheduleAssignmentRepository 排班指派数据访问接口
type ScheduleAssignmentRepository interface {
	Create(ctx context.Context, asg *model.UserScheduleAssignment) error
	GetByID(ctx context.Context, id uint) (*model.UserScheduleAssignment, error)
	ListByUser(ctx context.Context, userID uint) ([]model.UserScheduleAssignment, error)
	Delete(ctx context.Context, id uint) error
}

// ScheduleAdjustmentRepository 临时改班数据访问接口
type ScheduleAdjustmentRepository interface {
	Create(ctx context.Context, adj *model.ScheduleAdjustment) error
	GetByID(ctx context.Context, id uint) (*model.ScheduleAdjustment, error)
	ListByUser(ctx context.Context, userID uint, status string) ([]model.ScheduleAdjustment, error)
	ListApprovedByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]model.ScheduleAdjustment, error)
	Update(ctx context.Context, adj *model.ScheduleAdjustment) error
}

// ── ScheduleTemplate Repository 实现 ──

type scheduleTemplateRepo struct {
	db *gorm.DB
}

// NewScheduleTemplateRepo 创建 ScheduleTemplateRepository 实例
func NewScheduleTemplateRepo(db *gorm.DB) ScheduleTemplateRepository {
	return &scheduleTemplateRepo{db: db}
}

func (r *scheduleTemplateRepo) Create(ctx context.Context, tmpl *model.ScheduleTemplate) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

func (r *scheduleTemplateRepo) GetByID(ctx context.Context, id uint) (*model.ScheduleTemplate, error) {
	var tmpl model.ScheduleTemplate
	err := r.db.WithContext(ctx).
		Where("schedule_template_id = ?", id).
		First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *scheduleTemplateRepo) List(ctx context.Context, includeInactive bool) ([]model.ScheduleTemplate, error) {
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	var tmpls []model.ScheduleTemplate
	err := db.Order("schedule_template_id ASC").Find(&tmpls).Error
	return tmpls, err
}

func (r *scheduleTemplateRepo) Update(ctx context.Context, tmpl *model.ScheduleTemplate) error {
	return r.db.WithContext(ctx).Save(tmpl).Error
}

func (r *scheduleTemplateRepo) Delete(ctx context.Context, id uint, deletedBy uint) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleTemplate{}).
		Where("schedule_template_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// ── ScheduleAssignment Repository 实现 ──

type scheduleAssignmentRepo struct {
	db *gorm.DB
}

// NewScheduleAssignmentRepo 创建 ScheduleAssignmentRepository 实例
func NewScheduleAssignmentRepo(db *gorm.DB) ScheduleAssignmentRepository {
	return &scheduleAssignmentRepo{db: db}
}

func (r *scheduleAssignmentRepo) Create(ctx context.Context, asg *model.UserScheduleAssignment) error {
	return r.db.WithContext(ctx).Create(asg).Error
}

func (r *scheduleAssignmentRepo) GetByID(ctx context.Context, id uint) (*model.UserScheduleAssignment, error) {
	var asg model.UserScheduleAssignment
	err := r.db.WithContext(ctx).
		Preload("Template").
		Where("assignment_id = ?", id).
		First(&asg).Error
	if err != nil {
		return nil, err
	}
	return &asg, nil
}

// ListByUser 返回某员工的全部排班指派，按生效日期升序，班次解析在服务层完成
func (r *scheduleAssignmentRepo) ListByUser(ctx context.Context, userID uint) ([]model.UserScheduleAssignment, error) {
	var asgs []model.UserScheduleAssignment
	err := r.db.WithContext(ctx).
		Preload("Template").
		Where("user_id = ?", userID).
		Order("effectivity_date ASC, assignment_id ASC").
		Find(&asgs).Error
	return asgs, err
}

func (r *scheduleAssignmentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.UserScheduleAssignment{}).Error
}

// ── ScheduleAdjustment Repository 实现 ──

type scheduleAdjustmentRepo struct {
	db *gorm.DB
}

// NewScheduleAdjustmentRepo 创建 ScheduleAdjustmentRepository 实例
func NewScheduleAdjustmentRepo(db *gorm.DB) ScheduleAdjustmentRepository {
	return &scheduleAdjustmentRepo{db: db}
}

func (r *scheduleAdjustmentRepo) Create(ctx context.Context, adj *model.ScheduleAdjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

func (r *scheduleAdjustmentRepo) GetByID(ctx context.Context, id uint) (*model.ScheduleAdjustment, error) {
	var adj model.ScheduleAdjustment
	err := r.db.WithContext(ctx).
		Where("schedule_adjustment_id = ?", id).
		First(&adj).Error
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

func (r *scheduleAdjustmentRepo) ListByUser(ctx context.Context, userID uint, status string) ([]model.ScheduleAdjustment, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var adjs []model.ScheduleAdjustment
	err := db.Order("date DESC").Find(&adjs).Error
	return adjs, err
}

func (r *scheduleAdjustmentRepo) ListApprovedByUserAndRange(ctx context.Context, userID uint, start, end time.Time) ([]model.ScheduleAdjustment, error) {
	var adjs []model.ScheduleAdjustment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND date BETWEEN ? AND ?",
			userID, model.StatusApproved, start, end).
		Order("date ASC").
		Find(&adjs).Error
	return adjs, err
}

func (r *scheduleAdjustmentRepo) Update(ctx context.Context, adj *model.ScheduleAdjustment) error {
	return r.db.WithContext(ctx).Save(adj).Error
}
