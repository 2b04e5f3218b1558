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

// ── 请假模块业务错误 ──

var (
	ErrLeaveNotFound     = errors.New("请假申请不存在")
	ErrLeaveRangeInvalid = errors.New("请假结束日期不能早于开始日期")
	ErrLeaveNotPending   = errors.New("请假申请不在待审批状态")
)

// LeaveService 请假业务接口
type LeaveService interface {
	Create(ctx context.Context, req *dto.CreateLeaveRequest, callerID uint) (*dto.LeaveResponse, error)
	ListByUser(ctx context.Context, userID uint, status string) ([]dto.LeaveResponse, error)
	Review(ctx context.Context, id uint, approve bool, callerID uint) (*dto.LeaveResponse, error)
	Cancel(ctx context.Context, id uint, callerID uint) error
}

type leaveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaveService 创建 LeaveService 实例
func NewLeaveService(repo *repository.Repository, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *leaveService) Create(ctx context.Context, req *dto.CreateLeaveRequest, callerID uint) (*dto.LeaveResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, ErrLeaveRangeInvalid
	}

	leave := &model.LeaveRequest{
		UserID:    req.UserID,
		Type:      req.Type,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    model.StatusPending,
	}
	leave.CreatedBy = &callerID
	leave.UpdatedBy = &callerID

	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		s.logger.Error("创建请假申请失败", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return toLeaveResponse(leave), nil
}

// ────────────────────── ListByUser ──────────────────────

func (s *leaveService) ListByUser(ctx context.Context, userID uint, status string) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.Leave.ListByUser(ctx, userID, status)
	if err != nil {
		s.logger.Error("查询请假申请失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		result = append(result, *toLeaveResponse(&leaves[i]))
	}
	return result, nil
}

// ────────────────────── Review ──────────────────────

// Review 审批请假申请，仅 pending 状态可流转
func (s *leaveService) Review(ctx context.Context, id uint, approve bool, callerID uint) (*dto.LeaveResponse, error) {
	leave, err := s.repo.Leave.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	if leave.Status != model.StatusPending {
		return nil, ErrLeaveNotPending
	}

	if approve {
		leave.Status = model.StatusApproved
	} else {
		leave.Status = model.StatusRejected
	}
	leave.ReviewedBy = &callerID
	leave.UpdatedBy = &callerID

	if err := s.repo.Leave.Update(ctx, leave); err != nil {
		s.logger.Error("审批请假申请失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toLeaveResponse(leave), nil
}

// ────────────────────── Cancel ──────────────────────

func (s *leaveService) Cancel(ctx context.Context, id uint, callerID uint) error {
	leave, err := s.repo.Leave.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeaveNotFound
		}
		return err
	}
	if leave.Status != model.StatusPending {
		return ErrLeaveNotPending
	}

	leave.Status = model.StatusCancelled
	leave.UpdatedBy = &callerID

	if err := s.repo.Leave.Update(ctx, leave); err != nil {
		s.logger.Error("撤回请假申请失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toLeaveResponse(leave *model.LeaveRequest) *dto.LeaveResponse {
	return &dto.LeaveResponse{
		LeaveRequestID: leave.LeaveRequestID,
		UserID:         leave.UserID,
		Type:           leave.Type,
		StartDate:      leave.StartDate.Format("2006-01-02"),
		EndDate:        leave.EndDate.Format("2006-01-02"),
		Reason:         leave.Reason,
		Status:         leave.Status,
		ReviewedBy:     leave.ReviewedBy,
		CreatedAt:      leave.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
