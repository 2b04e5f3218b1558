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

// ── 加班模块业务错误 ──

var (
	ErrOvertimeNotFound     = errors.New("加班申请不存在")
	ErrOvertimeRangeInvalid = errors.New("加班结束时间必须晚于开始时间")
	ErrOvertimeNotPending   = errors.New("加班申请不在待审批状态")
)

// OvertimeService 加班业务接口
type OvertimeService interface {
	Create(ctx context.Context, req *dto.CreateOvertimeRequest, callerID uint) (*dto.OvertimeResponse, error)
	ListByUser(ctx context.Context, userID uint, status string) ([]dto.OvertimeResponse, error)
	Review(ctx context.Context, id uint, approve bool, callerID uint) (*dto.OvertimeResponse, error)
	Cancel(ctx context.Context, id uint, callerID uint) error
}

type overtimeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOvertimeService 创建 OvertimeService 实例
func NewOvertimeService(repo *repository.Repository, logger *zap.Logger) OvertimeService {
	return &overtimeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *overtimeService) Create(ctx context.Context, req *dto.CreateOvertimeRequest, callerID uint) (*dto.OvertimeResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	startMin, err := minutesOfDay(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	endMin, err := minutesOfDay(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if endMin <= startMin {
		return nil, ErrOvertimeRangeInvalid
	}

	ot := &model.OvertimeRequest{
		UserID:    req.UserID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		Status:    model.StatusPending,
	}
	ot.CreatedBy = &callerID
	ot.UpdatedBy = &callerID

	if err := s.repo.Overtime.Create(ctx, ot); err != nil {
		s.logger.Error("创建加班申请失败", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return toOvertimeResponse(ot), nil
}

// ────────────────────── ListByUser ──────────────────────

func (s *overtimeService) ListByUser(ctx context.Context, userID uint, status string) ([]dto.OvertimeResponse, error) {
	ots, err := s.repo.Overtime.ListByUser(ctx, userID, status)
	if err != nil {
		s.logger.Error("查询加班申请失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.OvertimeResponse, 0, len(ots))
	for i := range ots {
		result = append(result, *toOvertimeResponse(&ots[i]))
	}
	return result, nil
}

// ────────────────────── Review ──────────────────────

func (s *overtimeService) Review(ctx context.Context, id uint, approve bool, callerID uint) (*dto.OvertimeResponse, error) {
	ot, err := s.repo.Overtime.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOvertimeNotFound
		}
		return nil, err
	}
	if ot.Status != model.StatusPending {
		return nil, ErrOvertimeNotPending
	}

	if approve {
		ot.Status = model.StatusApproved
	} else {
		ot.Status = model.StatusRejected
	}
	ot.ReviewedBy = &callerID
	ot.UpdatedBy = &callerID

	if err := s.repo.Overtime.Update(ctx, ot); err != nil {
		s.logger.Error("审批加班申请失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toOvertimeResponse(ot), nil
}

// ────────────────────── Cancel ──────────────────────

func (s *overtimeService) Cancel(ctx context.Context, id uint, callerID uint) error {
	ot, err := s.repo.Overtime.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOvertimeNotFound
		}
		return err
	}
	if ot.Status != model.StatusPending {
		return ErrOvertimeNotPending
	}

	ot.Status = model.StatusCancelled
	ot.UpdatedBy = &callerID

	if err := s.repo.Overtime.Update(ctx, ot); err != nil {
		s.logger.Error("撤回加班申请失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toOvertimeResponse(ot *model.OvertimeRequest) *dto.OvertimeResponse {
	return &dto.OvertimeResponse{
		OvertimeRequestID: ot.OvertimeRequestID,
		UserID:            ot.UserID,
		Date:              ot.Date.Format("2006-01-02"),
		StartTime:         ot.StartTime,
		EndTime:           ot.EndTime,
		Reason:            ot.Reason,
		Status:            ot.Status,
		ReviewedBy:        ot.ReviewedBy,
		CreatedAt:         ot.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
