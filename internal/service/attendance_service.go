package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/model"
	"timecard/backend/internal/repository"
)

// ── 打卡模块业务错误 ──

var (
	ErrPunchStillOpen = errors.New("存在未签退的打卡记录，请先签退")
	ErrNoOpenPunch    = errors.New("没有未签退的打卡记录")
	ErrInvalidTime    = errors.New("无效的时间格式，期望 HH:MM")
)

// AttendanceService 打卡业务接口
type AttendanceService interface {
	ClockIn(ctx context.Context, userID uint, req *dto.ClockInRequest) (*dto.AttendanceResponse, error)
	ClockOut(ctx context.Context, userID uint, req *dto.ClockOutRequest) (*dto.AttendanceResponse, error)
	List(ctx context.Context, req *dto.ListAttendanceRequest) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── ClockIn ──────────────────────

// ClockIn 签到。date / time_in 缺省时取服务器当前值。
// 迟到判定与 DTR 生成走同一个班次解析函数，保证两处口径一致。
func (s *attendanceService) ClockIn(ctx context.Context, userID uint, req *dto.ClockInRequest) (*dto.AttendanceResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	date := dateOnly(now)
	if req.Date != "" {
		var err error
		date, err = parseDate(req.Date)
		if err != nil {
			return nil, err
		}
	}
	timeIn := now.Format("15:04")
	if req.TimeIn != "" {
		timeIn = req.TimeIn
	}
	if _, err := minutesOfDay(timeIn); err != nil {
		return nil, ErrInvalidTime
	}

	// 同一员工同一时刻至多一条未闭合打卡
	if _, err := s.repo.Attendance.GetOpenByUser(ctx, userID); err == nil {
		return nil, ErrPunchStillOpen
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询未闭合打卡失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	shift, err := s.resolveShiftFor(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	remarks := model.RemarkOnTime
	if shift != nil {
		schedIn, err := minutesOfDay(shift.TimeIn)
		if err != nil {
			return nil, err
		}
		actIn, _ := minutesOfDay(timeIn)
		if actIn > schedIn {
			remarks = model.RemarkLate
		}
	}

	punch := &model.AttendancePunch{
		UserID:    userID,
		Date:      date,
		Weekday:   date.Weekday().String(),
		TimeIn:    timeIn,
		IsRestDay: shift == nil,
		Remarks:   remarks,
	}
	punch.CreatedBy = &userID
	punch.UpdatedBy = &userID

	if err := s.repo.Attendance.Create(ctx, punch); err != nil {
		s.logger.Error("创建打卡记录失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toAttendanceResponse(punch), nil
}

// ────────────────────── ClockOut ──────────────────────

func (s *attendanceService) ClockOut(ctx context.Context, userID uint, req *dto.ClockOutRequest) (*dto.AttendanceResponse, error) {
	punch, err := s.repo.Attendance.GetOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenPunch
		}
		s.logger.Error("查询未闭合打卡失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	timeOut := time.Now().UTC().Format("15:04")
	if req.TimeOut != "" {
		timeOut = req.TimeOut
	}
	if _, err := minutesOfDay(timeOut); err != nil {
		return nil, ErrInvalidTime
	}

	shift, err := s.resolveShiftFor(ctx, userID, dateOnly(punch.Date))
	if err != nil {
		return nil, err
	}
	if shift != nil {
		schedOut, err := minutesOfDay(shift.TimeOut)
		if err != nil {
			return nil, err
		}
		actOut, _ := minutesOfDay(timeOut)
		// 早退覆盖签到时的备注
		if actOut < schedOut {
			punch.Remarks = model.RemarkUndertime
		}
	}

	punch.TimeOut = &timeOut
	punch.UpdatedBy = &userID

	if err := s.repo.Attendance.Update(ctx, punch); err != nil {
		s.logger.Error("更新打卡记录失败", zap.Uint("attendance_id", punch.AttendanceID), zap.Error(err))
		return nil, err
	}

	return toAttendanceResponse(punch), nil
}

// ────────────────────── List ──────────────────────

func (s *attendanceService) List(ctx context.Context, req *dto.ListAttendanceRequest) ([]dto.AttendanceResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	punches, err := s.repo.Attendance.ListByUserAndRange(ctx, req.UserID, start, end)
	if err != nil {
		s.logger.Error("查询打卡记录失败", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceResponse, 0, len(punches))
	for i := range punches {
		result = append(result, *toAttendanceResponse(&punches[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

// resolveShiftFor 加载解析某日班次所需的指派与改班并调用共享解析函数
func (s *attendanceService) resolveShiftFor(ctx context.Context, userID uint, date time.Time) (*ResolvedShift, error) {
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
	return ResolveShift(date, assignments, adjustment), nil
}

func toAttendanceResponse(p *model.AttendancePunch) *dto.AttendanceResponse {
	return &dto.AttendanceResponse{
		AttendanceID: p.AttendanceID,
		UserID:       p.UserID,
		Date:         p.Date.Format("2006-01-02"),
		Weekday:      p.Weekday,
		TimeIn:       p.TimeIn,
		TimeOut:      p.TimeOut,
		IsRestDay:    p.IsRestDay,
		Remarks:      p.Remarks,
	}
}
