package handler

import "timecard/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	User           *UserHandler
	Department     *DepartmentHandler
	Cutoff         *CutoffHandler
	Schedule       *ScheduleHandler
	Attendance     *AttendanceHandler
	TimeAdjustment *TimeAdjustmentHandler
	Leave          *LeaveHandler
	Overtime       *OvertimeHandler
	DTR            *DTRHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		User:           NewUserHandler(svc.User),
		Department:     NewDepartmentHandler(svc.Department),
		Cutoff:         NewCutoffHandler(svc.Cutoff),
		Schedule:       NewScheduleHandler(svc.Schedule),
		Attendance:     NewAttendanceHandler(svc.Attendance),
		TimeAdjustment: NewTimeAdjustmentHandler(svc.TimeAdjustment),
		Leave:          NewLeaveHandler(svc.Leave),
		Overtime:       NewOvertimeHandler(svc.Overtime),
		DTR:            NewDTRHandler(svc.DTR),
		Export:         NewExportHandler(svc.Export),
	}
}
