package repository

import (
	"context"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
)

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id uint) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id uint, deletedBy uint) error
}

// JobTitleRepository 职位数据访问接口
type JobTitleRepository interface {
	Create(ctx context.Context, jt *model.JobTitle) error
	GetByID(ctx context.Context, id uint) (*model.JobTitle, error)
	List(ctx context.Context, departmentID *uint) ([]model.JobTitle, error)
	Update(ctx context.Context, jt *model.JobTitle) error
	Delete(ctx context.Context, id uint, deletedBy uint) error
}

// ── Department Repository 实现 ──

type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepo) GetByID(ctx context.Context, id uint) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	err := r.db.WithContext(ctx).
		Order("department_id ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) Update(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *departmentRepo) Delete(ctx context.Context, id uint, deletedBy uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("department_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// ── JobTitle Repository 实现 ──

type jobTitleRepo struct {
	db *gorm.DB
}

// NewJobTitleRepo 创建 JobTitleRepository 实例
func NewJobTitleRepo(db *gorm.DB) JobTitleRepository {
	return &jobTitleRepo{db: db}
}

func (r *jobTitleRepo) Create(ctx context.Context, jt *model.JobTitle) error {
	return r.db.WithContext(ctx).Create(jt).Error
}

func (r *jobTitleRepo) GetByID(ctx context.Context, id uint) (*model.JobTitle, error) {
	var jt model.JobTitle
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("job_title_id = ?", id).
		First(&jt).Error
	if err != nil {
		return nil, err
	}
	return &jt, nil
}

func (r *jobTitleRepo) List(ctx context.Context, departmentID *uint) ([]model.JobTitle, error) {
	db := r.db.WithContext(ctx).Preload("Department")
	if departmentID != nil {
		db = db.Where("department_id = ?", *departmentID)
	}
	var titles []model.JobTitle
	err := db.Order("job_title_id ASC").Find(&titles).Error
	return titles, err
}

func (r *jobTitleRepo) Update(ctx context.Context, jt *model.JobTitle) error {
	return r.db.WithContext(ctx).Save(jt).Error
}

func (r *jobTitleRepo) Delete(ctx context.Context, id uint, deletedBy uint) error {
	return r.db.WithContext(ctx).
		Model(&model.JobTitle{}).
		Where("job_title_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
