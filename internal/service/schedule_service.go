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

// ── 班表模块业务错误 ──

var (
	ErrTemplateNotFound     = errors.New("班表模板不存在")
	ErrTemplateDaysInvalid  = errors.New("班表包含无效的星期名或时间")
	ErrAssignmentNotFound   = errors.New("排班指派不存在")
	ErrAdjustmentNotFound   = errors.New("改班申请不存在")
	ErrAdjustmentNotPending = errors.New("改班申请不在待审批状态")
)

var validWeekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// ScheduleService 班表业务接口：模板、指派与单日改班
type ScheduleService interface {
	CreateTemplate(ctx context.Context, req *dto.CreateScheduleTemplateRequest, callerID uint) (*dto.ScheduleTemplateResponse, error)
	GetTemplate(ctx context.Context, id uint) (*dto.ScheduleTemplateResponse, error)
	ListTemplates(ctx context.Context, includeInactive bool) ([]dto.ScheduleTemplateResponse, error)
	UpdateTemplate(ctx context.Context, id uint, req *dto.UpdateScheduleTemplateRequest, callerID uint) (*dto.ScheduleTemplateResponse, error)
	DeleteTemplate(ctx context.Context, id uint, callerID uint) error

	CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest, callerID uint) (*dto.AssignmentResponse, error)
	ListAssignments(ctx context.Context, userID uint) ([]dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id uint) error

	CreateAdjustment(ctx context.Context, req *dto.CreateScheduleAdjustmentRequest, callerID uint) (*dto.ScheduleAdjustmentResponse, error)
	ListAdjustments(ctx context.Context, userID uint, status string) ([]dto.ScheduleAdjustmentResponse, error)
	ReviewAdjustment(ctx context.Context, id uint, approve bool, callerID uint) (*dto.ScheduleAdjustmentResponse, error)
	CancelAdjustment(ctx context.Context, id uint, callerID uint) error

	ResolveShift(ctx context.Context, userID uint, date string) (*dto.ResolvedShiftResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── CreateTemplate ──────────────────────

func (s *scheduleService) CreateTemplate(ctx context.Context, req *dto.CreateScheduleTemplateRequest, callerID uint) (*dto.ScheduleTemplateResponse, error) {
	days, err := toScheduleDays(req.Days)
	if err != nil {
		return nil, err
	}

	tmpl := &model.ScheduleTemplate{
		Title:    req.Title,
		Days:     days,
		IsActive: true,
	}
	tmpl.CreatedBy = &callerID
	tmpl.UpdatedBy = &callerID

	if err := s.repo.ScheduleTemplate.Create(ctx, tmpl); err != nil {
		s.logger.Error("创建班表模板失败", zap.Error(err))
		return nil, err
	}
	return toTemplateResponse(tmpl), nil
}

// ────────────────────── GetTemplate ──────────────────────

func (s *scheduleService) GetTemplate(ctx context.Context, id uint) (*dto.ScheduleTemplateResponse, error) {
	tmpl, err := s.repo.ScheduleTemplate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("查询班表模板失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toTemplateResponse(tmpl), nil
}

// ────────────────────── ListTemplates ──────────────────────

func (s *scheduleService) ListTemplates(ctx context.Context, includeInactive bool) ([]dto.ScheduleTemplateResponse, error) {
	tmpls, err := s.repo.ScheduleTemplate.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("列出班表模板失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ScheduleTemplateResponse, 0, len(tmpls))
	for i := range tmpls {
		result = append(result, *toTemplateResponse(&tmpls[i]))
	}
	return result, nil
}

// ────────────────────── UpdateTemplate ──────────────────────

func (s *scheduleService) UpdateTemplate(ctx context.Context, id uint, req *dto.UpdateScheduleTemplateRequest, callerID uint) (*dto.ScheduleTemplateResponse, error) {
	tmpl, err := s.repo.ScheduleTemplate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("查询班表模板失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		tmpl.Title = *req.Title
	}
	if req.Days != nil {
		days, err := toScheduleDays(req.Days)
		if err != nil {
			return nil, err
		}
		tmpl.Days = days
	}
	if req.IsActive != nil {
		tmpl.IsActive = *req.IsActive
	}
	tmpl.UpdatedBy = &callerID

	if err := s.repo.ScheduleTemplate.Update(ctx, tmpl); err != nil {
		s.logger.Error("更新班表模板失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toTemplateResponse(tmpl), nil
}

// ────────────────────── DeleteTemplate ──────────────────────

func (s *scheduleService) DeleteTemplate(ctx context.Context, id uint, callerID uint) error {
	if _, err := s.repo.ScheduleTemplate.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	if err := s.repo.ScheduleTemplate.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除班表模板失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── CreateAssignment ──────────────────────

func (s *scheduleService) CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest, callerID uint) (*dto.AssignmentResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	tmpl, err := s.repo.ScheduleTemplate.GetByID(ctx, req.ScheduleTemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	effectivity, err := parseDate(req.EffectivityDate)
	if err != nil {
		return nil, err
	}

	asg := &model.UserScheduleAssignment{
		UserID:             req.UserID,
		ScheduleTemplateID: req.ScheduleTemplateID,
		EffectivityDate:    effectivity,
	}
	asg.CreatedBy = &callerID
	asg.UpdatedBy = &callerID

	if err := s.repo.ScheduleAssignment.Create(ctx, asg); err != nil {
		s.logger.Error("创建排班指派失败", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	asg.Template = tmpl
	return toAssignmentResponse(asg), nil
}

// ────────────────────── ListAssignments ──────────────────────

func (s *scheduleService) ListAssignments(ctx context.Context, userID uint) ([]dto.AssignmentResponse, error) {
	asgs, err := s.repo.ScheduleAssignment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询排班指派失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.AssignmentResponse, 0, len(asgs))
	for i := range asgs {
		result = append(result, *toAssignmentResponse(&asgs[i]))
	}
	return result, nil
}

// ────────────────────── DeleteAssignment ──────────────────────

func (s *scheduleService) DeleteAssignment(ctx context.Context, id uint) error {
	if _, err := s.repo.ScheduleAssignment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if err := s.repo.ScheduleAssignment.Delete(ctx, id); err != nil {
		s.logger.Error("删除排班指派失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── CreateAdjustment ──────────────────────

func (s *scheduleService) CreateAdjustment(ctx context.Context, req *dto.CreateScheduleAdjustmentRequest, callerID uint) (*dto.ScheduleAdjustmentResponse, error) {
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

	adj := &model.ScheduleAdjustment{
		UserID:  req.UserID,
		Date:    date,
		TimeIn:  req.TimeIn,
		TimeOut: req.TimeOut,
		Reason:  req.Reason,
		Status:  model.StatusPending,
	}
	adj.CreatedBy = &callerID
	adj.UpdatedBy = &callerID

	if err := s.repo.ScheduleAdjustment.Create(ctx, adj); err != nil {
		s.logger.Error("创建改班申请失败", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// ────────────────────── ListAdjustments ──────────────────────

func (s *scheduleService) ListAdjustments(ctx context.Context, userID uint, status string) ([]dto.ScheduleAdjustmentResponse, error) {
	adjs, err := s.repo.ScheduleAdjustment.ListByUser(ctx, userID, status)
	if err != nil {
		s.logger.Error("查询改班申请失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.ScheduleAdjustmentResponse, 0, len(adjs))
	for i := range adjs {
		result = append(result, *toAdjustmentResponse(&adjs[i]))
	}
	return result, nil
}

// ────────────────────── ReviewAdjustment ──────────────────────

// ReviewAdjustment 审批改班申请，仅 pending 状态可流转
func (s *scheduleService) ReviewAdjustment(ctx context.Context, id uint, approve bool, callerID uint) (*dto.ScheduleAdjustmentResponse, error) {
	adj, err := s.repo.ScheduleAdjustment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdjustmentNotFound
		}
		return nil, err
	}
	if adj.Status != model.StatusPending {
		return nil, ErrAdjustmentNotPending
	}

	if approve {
		adj.Status = model.StatusApproved
	} else {
		adj.Status = model.StatusRejected
	}
	adj.ReviewedBy = &callerID
	adj.UpdatedBy = &callerID

	if err := s.repo.ScheduleAdjustment.Update(ctx, adj); err != nil {
		s.logger.Error("审批改班申请失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// ────────────────────── CancelAdjustment ──────────────────────

func (s *scheduleService) CancelAdjustment(ctx context.Context, id uint, callerID uint) error {
	adj, err := s.repo.ScheduleAdjustment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdjustmentNotFound
		}
		return err
	}
	if adj.Status != model.StatusPending {
		return ErrAdjustmentNotPending
	}

	adj.Status = model.StatusCancelled
	adj.UpdatedBy = &callerID

	if err := s.repo.ScheduleAdjustment.Update(ctx, adj); err != nil {
		s.logger.Error("撤回改班申请失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ResolveShift ──────────────────────

// ResolveShift 查询某员工某日的生效班次
func (s *scheduleService) ResolveShift(ctx context.Context, userID uint, dateStr string) (*dto.ResolvedShiftResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.ScheduleAssignment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询排班指派失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	adjustments, err := s.repo.ScheduleAdjustment.ListApprovedByUserAndRange(ctx, userID, date, date)
	if err != nil {
		s.logger.Error("查询改班记录失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	var adjustment *model.ScheduleAdjustment
	if len(adjustments) > 0 {
		adjustment = &adjustments[0]
	}

	shift := ResolveShift(date, assignments, adjustment)
	resp := &dto.ResolvedShiftResponse{
		Date:      dateStr,
		IsRestDay: shift == nil,
		Source:    "rest_day",
	}
	if shift != nil {
		resp.TimeIn = shift.TimeIn
		resp.TimeOut = shift.TimeOut
		resp.Source = shift.Source
	}
	return resp, nil
}

// ── 内部辅助方法 ──

func toScheduleDays(days map[string]dto.ShiftTimeDTO) (model.ScheduleDays, error) {
	result := make(model.ScheduleDays, len(days))
	for weekday, shift := range days {
		if !validWeekdays[weekday] {
			return nil, ErrTemplateDaysInvalid
		}
		inMin, err := minutesOfDay(shift.In)
		if err != nil {
			return nil, ErrTemplateDaysInvalid
		}
		outMin, err := minutesOfDay(shift.Out)
		if err != nil {
			return nil, ErrTemplateDaysInvalid
		}
		if outMin <= inMin {
			return nil, ErrTemplateDaysInvalid
		}
		result[weekday] = model.ShiftTime{In: shift.In, Out: shift.Out}
	}
	return result, nil
}

func toTemplateResponse(tmpl *model.ScheduleTemplate) *dto.ScheduleTemplateResponse {
	days := make(map[string]dto.ShiftTimeDTO, len(tmpl.Days))
	for weekday, shift := range tmpl.Days {
		days[weekday] = dto.ShiftTimeDTO{In: shift.In, Out: shift.Out}
	}
	return &dto.ScheduleTemplateResponse{
		ScheduleTemplateID: tmpl.ScheduleTemplateID,
		Title:              tmpl.Title,
		Days:               days,
		IsActive:           tmpl.IsActive,
		CreatedAt:          tmpl.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toAssignmentResponse(asg *model.UserScheduleAssignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		AssignmentID:       asg.AssignmentID,
		UserID:             asg.UserID,
		ScheduleTemplateID: asg.ScheduleTemplateID,
		EffectivityDate:    asg.EffectivityDate.Format("2006-01-02"),
		CreatedAt:          asg.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if asg.Template != nil {
		resp.TemplateTitle = asg.Template.Title
	}
	return resp
}

func toAdjustmentResponse(adj *model.ScheduleAdjustment) *dto.ScheduleAdjustmentResponse {
	return &dto.ScheduleAdjustmentResponse{
		ScheduleAdjustmentID: adj.ScheduleAdjustmentID,
		UserID:               adj.UserID,
		Date:                 adj.Date.Format("2006-01-02"),
		TimeIn:               adj.TimeIn,
		TimeOut:              adj.TimeOut,
		Reason:               adj.Reason,
		Status:               adj.Status,
		ReviewedBy:           adj.ReviewedBy,
		CreatedAt:            adj.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
