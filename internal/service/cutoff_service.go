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

// ── 考勤周期模块业务错误 ──

var (
	ErrCutoffDateInvalid = errors.New("考勤周期结束日期不能早于开始日期")
	ErrNoActiveCutoff    = errors.New("当前没有启用的考勤周期")
)

// CutoffService 考勤周期业务接口
type CutoffService interface {
	Create(ctx context.Context, req *dto.CreateCutoffRequest, callerID uint) (*dto.CutoffResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.CutoffResponse, error)
	GetActive(ctx context.Context) (*dto.CutoffResponse, error)
	List(ctx context.Context) ([]dto.CutoffResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCutoffRequest, callerID uint) (*dto.CutoffResponse, error)
	Activate(ctx context.Context, id uint, callerID uint) error
	Delete(ctx context.Context, id uint, callerID uint) error
}

type cutoffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCutoffService 创建 CutoffService 实例
func NewCutoffService(repo *repository.Repository, logger *zap.Logger) CutoffService {
	return &cutoffService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *cutoffService) Create(ctx context.Context, req *dto.CreateCutoffRequest, callerID uint) (*dto.CutoffResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	cutoffDate, err := parseDate(req.CutoffDate)
	if err != nil {
		return nil, err
	}
	if cutoffDate.Before(startDate) {
		return nil, ErrCutoffDateInvalid
	}

	cutoff := &model.Cutoff{
		Name:       req.Name,
		StartDate:  startDate,
		CutoffDate: cutoffDate,
		IsActive:   req.IsActive,
	}
	cutoff.CreatedBy = &callerID
	cutoff.UpdatedBy = &callerID

	if err := s.repo.Cutoff.Create(ctx, cutoff); err != nil {
		s.logger.Error("创建考勤周期失败", zap.Error(err))
		return nil, err
	}
	return toCutoffResponse(cutoff), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *cutoffService) GetByID(ctx context.Context, id uint) (*dto.CutoffResponse, error) {
	cutoff, err := s.repo.Cutoff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCutoffNotFound
		}
		s.logger.Error("查询考勤周期失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toCutoffResponse(cutoff), nil
}

// ────────────────────── GetActive ──────────────────────

func (s *cutoffService) GetActive(ctx context.Context) (*dto.CutoffResponse, error) {
	cutoff, err := s.repo.Cutoff.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveCutoff
		}
		s.logger.Error("查询启用考勤周期失败", zap.Error(err))
		return nil, err
	}
	return toCutoffResponse(cutoff), nil
}

// ────────────────────── List ──────────────────────

func (s *cutoffService) List(ctx context.Context) ([]dto.CutoffResponse, error) {
	cutoffs, err := s.repo.Cutoff.List(ctx)
	if err != nil {
		s.logger.Error("列出考勤周期失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CutoffResponse, 0, len(cutoffs))
	for i := range cutoffs {
		result = append(result, *toCutoffResponse(&cutoffs[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 管理性修正。考勤周期可能已被生成的 DTR 引用，
// 通过请求携带的 version 做乐观锁校验，冲突时由上层返回 409
func (s *cutoffService) Update(ctx context.Context, id uint, req *dto.UpdateCutoffRequest, callerID uint) (*dto.CutoffResponse, error) {
	cutoff, err := s.repo.Cutoff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCutoffNotFound
		}
		s.logger.Error("查询考勤周期失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		cutoff.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		cutoff.StartDate = startDate
	}
	if req.CutoffDate != nil {
		cutoffDate, err := parseDate(*req.CutoffDate)
		if err != nil {
			return nil, err
		}
		cutoff.CutoffDate = cutoffDate
	}
	if cutoff.CutoffDate.Before(cutoff.StartDate) {
		return nil, ErrCutoffDateInvalid
	}
	if req.IsActive != nil {
		cutoff.IsActive = *req.IsActive
	}

	cutoff.Version = req.Version
	cutoff.UpdatedBy = &callerID

	if err := s.repo.Cutoff.Update(ctx, cutoff); err != nil {
		s.logger.Error("更新考勤周期失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toCutoffResponse(cutoff), nil
}

// ────────────────────── Activate ──────────────────────

// Activate 切换启用的考勤周期，ClearActive 与 Update 在同一事务内完成
func (s *cutoffService) Activate(ctx context.Context, id uint, callerID uint) error {
	cutoff, err := s.repo.Cutoff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCutoffNotFound
		}
		s.logger.Error("查询考勤周期失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Cutoff.ClearActive(ctx); err != nil {
		tx.Rollback()
		s.logger.Error("清除启用考勤周期失败", zap.Error(err))
		return err
	}

	cutoff.IsActive = true
	cutoff.UpdatedBy = &callerID

	if err := txRepo.Cutoff.Update(ctx, cutoff); err != nil {
		tx.Rollback()
		s.logger.Error("启用考勤周期失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("提交事务失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *cutoffService) Delete(ctx context.Context, id uint, callerID uint) error {
	if _, err := s.repo.Cutoff.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCutoffNotFound
		}
		return err
	}
	if err := s.repo.Cutoff.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除考勤周期失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toCutoffResponse(cutoff *model.Cutoff) *dto.CutoffResponse {
	return &dto.CutoffResponse{
		CutoffID:   cutoff.CutoffID,
		Name:       cutoff.Name,
		StartDate:  cutoff.StartDate.Format("2006-01-02"),
		CutoffDate: cutoff.CutoffDate.Format("2006-01-02"),
		IsActive:   cutoff.IsActive,
		Version:    cutoff.Version,
		CreatedAt:  cutoff.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
