package service

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"timecard/backend/config"
	"timecard/backend/internal/repository"
	redispkg "timecard/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	User           UserService
	Department     DepartmentService
	Cutoff         CutoffService
	Schedule       ScheduleService
	Attendance     AttendanceService
	TimeAdjustment TimeAdjustmentService
	Leave          LeaveService
	Overtime       OvertimeService
	DTR            DTRService
	Export         ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redispkg.Client,
	logger *zap.Logger,
) *Service {
	dtrSvc := NewDTRService(cfg, repo, rdb, logger)
	return &Service{
		User:           NewUserService(repo, logger),
		Department:     NewDepartmentService(repo, logger),
		Cutoff:         NewCutoffService(repo, logger),
		Schedule:       NewScheduleService(repo, logger),
		Attendance:     NewAttendanceService(repo, logger),
		TimeAdjustment: NewTimeAdjustmentService(repo, logger),
		Leave:          NewLeaveService(repo, logger),
		Overtime:       NewOvertimeService(repo, logger),
		DTR:            dtrSvc,
		Export:         NewExportService(repo, dtrSvc, logger),
	}
}

// ── 跨模块共享错误与辅助 ──

// ErrInvalidDate 日期格式错误（期望 "2006-01-02"）
var ErrInvalidDate = errors.New("无效的日期格式，期望 YYYY-MM-DD")

// parseDate 解析 "YYYY-MM-DD" 为 UTC 零点
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
