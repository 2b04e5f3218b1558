package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/model"
	"timecard/backend/internal/repository"
)

// ── 部门与职位模块业务错误 ──

var (
	ErrDepartmentNotFound = errors.New("部门不存在")
	ErrJobTitleNotFound   = errors.New("职位不存在")
)

// DepartmentService 部门与职位业务接口
type DepartmentService interface {
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest, callerID uint) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, id uint, req *dto.UpdateDepartmentRequest, callerID uint) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id uint, callerID uint) error

	CreateJobTitle(ctx context.Context, req *dto.CreateJobTitleRequest, callerID uint) (*dto.JobTitleResponse, error)
	ListJobTitles(ctx context.Context, departmentID *uint) ([]dto.JobTitleResponse, error)
	UpdateJobTitle(ctx context.Context, id uint, req *dto.UpdateJobTitleRequest, callerID uint) (*dto.JobTitleResponse, error)
	DeleteJobTitle(ctx context.Context, id uint, callerID uint) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── CreateDepartment ──────────────────────

func (s *departmentService) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest, callerID uint) (*dto.DepartmentResponse, error) {
	dept := &model.Department{Name: req.Name}
	dept.CreatedBy = &callerID
	dept.UpdatedBy = &callerID

	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// ────────────────────── ListDepartments ──────────────────────

func (s *departmentService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, *toDepartmentResponse(&depts[i]))
	}
	return result, nil
}

// ────────────────────── UpdateDepartment ──────────────────────

func (s *departmentService) UpdateDepartment(ctx context.Context, id uint, req *dto.UpdateDepartmentRequest, callerID uint) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	dept.Name = req.Name
	dept.UpdatedBy = &callerID

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("更新部门失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// ────────────────────── DeleteDepartment ──────────────────────

func (s *departmentService) DeleteDepartment(ctx context.Context, id uint, callerID uint) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}
	if err := s.repo.Department.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除部门失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── CreateJobTitle ──────────────────────

func (s *departmentService) CreateJobTitle(ctx context.Context, req *dto.CreateJobTitleRequest, callerID uint) (*dto.JobTitleResponse, error) {
	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	jt := &model.JobTitle{Name: req.Name, DepartmentID: req.DepartmentID}
	jt.CreatedBy = &callerID
	jt.UpdatedBy = &callerID

	if err := s.repo.JobTitle.Create(ctx, jt); err != nil {
		s.logger.Error("创建职位失败", zap.Error(err))
		return nil, err
	}
	return toJobTitleResponse(jt), nil
}

// ────────────────────── ListJobTitles ──────────────────────

func (s *departmentService) ListJobTitles(ctx context.Context, departmentID *uint) ([]dto.JobTitleResponse, error) {
	titles, err := s.repo.JobTitle.List(ctx, departmentID)
	if err != nil {
		s.logger.Error("列出职位失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.JobTitleResponse, 0, len(titles))
	for i := range titles {
		result = append(result, *toJobTitleResponse(&titles[i]))
	}
	return result, nil
}

// ────────────────────── UpdateJobTitle ──────────────────────

func (s *departmentService) UpdateJobTitle(ctx context.Context, id uint, req *dto.UpdateJobTitleRequest, callerID uint) (*dto.JobTitleResponse, error) {
	jt, err := s.repo.JobTitle.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobTitleNotFound
		}
		s.logger.Error("查询职位失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		jt.Name = *req.Name
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		jt.DepartmentID = *req.DepartmentID
	}
	jt.UpdatedBy = &callerID

	if err := s.repo.JobTitle.Update(ctx, jt); err != nil {
		s.logger.Error("更新职位失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toJobTitleResponse(jt), nil
}

// ────────────────────── DeleteJobTitle ──────────────────────

func (s *departmentService) DeleteJobTitle(ctx context.Context, id uint, callerID uint) error {
	if _, err := s.repo.JobTitle.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobTitleNotFound
		}
		return err
	}
	if err := s.repo.JobTitle.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除职位失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toDepartmentResponse(dept *model.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		DepartmentID: dept.DepartmentID,
		Name:         dept.Name,
		CreatedAt:    dept.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toJobTitleResponse(jt *model.JobTitle) *dto.JobTitleResponse {
	resp := &dto.JobTitleResponse{
		JobTitleID:   jt.JobTitleID,
		Name:         jt.Name,
		DepartmentID: jt.DepartmentID,
		CreatedAt:    jt.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if jt.Department != nil {
		resp.Department = jt.Department.Name
	}
	return resp
}
