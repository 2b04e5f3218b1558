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

// ── 补卡模块业务错误 ──

var ErrTimeAdjustmentNotFound = errors.New("补卡记录不存在")

// TimeAdjustmentService 补卡业务接口
type TimeAdjustmentService interface {
	Create(ctx context.Context, req *dto.CreateTimeAdjustmentRequest, callerID uint) (*dto.TimeAdjustmentResponse, error)
	ListByUserAndRange(ctx context.Context, userID uint, startDate, endDate string) ([]dto.TimeAdjustmentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type timeAdjustmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeAdjustmentService 创建 TimeAdjustmentService 实例
func NewTimeAdjustmentService(repo *repository.Repository, logger *zap.Logger) TimeAdjustmentService {
	return &timeAdjustmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *timeAdjustmentService) Create(ctx context.Context, req *dto.CreateTimeAdjustmentRequest, callerID uint) (*dto.TimeAdjustmentResponse, error) {
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
	if _, err := minutesOfDay(req.TimeIn); err != nil {
		return nil, ErrInvalidTime
	}
	if _, err := minutesOfDay(req.TimeOut); err != nil {
		return nil, ErrInvalidTime
	}

	adj := &model.TimeAdjustment{
		UserID:  req.UserID,
		Date:    date,
		TimeIn:  req.TimeIn,
		TimeOut: req.TimeOut,
		Reason:  req.Reason,
	}
	adj.CreatedBy = &callerID
	adj.UpdatedBy = &callerID

	if err := s.repo.TimeAdjustment.Create(ctx, adj); err != nil {
		s.logger.Error("创建补卡记录失败", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return toTimeAdjustmentResponse(adj), nil
}

// ────────────────────── ListByUserAndRange ──────────────────────

func (s *timeAdjustmentService) ListByUserAndRange(ctx context.Context, userID uint, startDate, endDate string) ([]dto.TimeAdjustmentResponse, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}

	adjs, err := s.repo.TimeAdjustment.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("查询补卡记录失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.TimeAdjustmentResponse, 0, len(adjs))
	for i := range adjs {
		result = append(result, *toTimeAdjustmentResponse(&adjs[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *timeAdjustmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.TimeAdjustment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeAdjustmentNotFound
		}
		return err
	}
	if err := s.repo.TimeAdjustment.Delete(ctx, id); err != nil {
		s.logger.Error("删除补卡记录失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toTimeAdjustmentResponse(adj *model.TimeAdjustment) *dto.TimeAdjustmentResponse {
	return &dto.TimeAdjustmentResponse{
		TimeAdjustmentID: adj.TimeAdjustmentID,
		UserID:           adj.UserID,
		Date:             adj.Date.Format("2006-01-02"),
		TimeIn:           adj.TimeIn,
		TimeOut:          adj.TimeOut,
		Reason:           adj.Reason,
		CreatedAt:        adj.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
