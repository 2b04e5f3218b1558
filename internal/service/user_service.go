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

// UserService 员工业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID uint) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) (*dto.UserListResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest, callerID uint) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uint, callerID uint) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID uint) (*dto.UserResponse, error) {
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
	}
	if req.JobTitleID != nil {
		if _, err := s.repo.JobTitle.GetByID(ctx, *req.JobTitleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrJobTitleNotFound
			}
			return nil, err
		}
	}

	user := &model.User{
		Name:             req.Name,
		Email:            req.Email,
		EmployeeNo:       req.EmployeeNo,
		Role:             req.Role,
		DepartmentID:     req.DepartmentID,
		JobTitleID:       req.JobTitleID,
		EmploymentStatus: "active",
	}
	user.CreatedBy = &callerID
	user.UpdatedBy = &callerID

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建员工失败", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, page *dto.PaginationRequest) (*dto.UserListResponse, error) {
	users, total, err := s.repo.User.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *toUserResponse(&users[i]))
	}
	return &dto.UserListResponse{Total: total, Items: items}, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest, callerID uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		user.DepartmentID = req.DepartmentID
	}
	if req.JobTitleID != nil {
		if _, err := s.repo.JobTitle.GetByID(ctx, *req.JobTitleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrJobTitleNotFound
			}
			return nil, err
		}
		user.JobTitleID = req.JobTitleID
	}
	if req.EmploymentStatus != nil {
		user.EmploymentStatus = *req.EmploymentStatus
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新员工失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id uint, callerID uint) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.repo.User.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除员工失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		UserID:           user.UserID,
		Name:             user.Name,
		Email:            user.Email,
		EmployeeNo:       user.EmployeeNo,
		Role:             user.Role,
		EmploymentStatus: user.EmploymentStatus,
		CreatedAt:        user.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if user.Department != nil {
		resp.Department = &user.Department.Name
	}
	if user.JobTitle != nil {
		resp.JobTitle = &user.JobTitle.Name
	}
	return resp
}
