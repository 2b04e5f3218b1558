package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timecard/backend/config"
	"timecard/backend/internal/api/handler"
	"timecard/backend/internal/api/middleware"
	"timecard/backend/pkg/jwt"
	redispkg "timecard/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redispkg.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// DTR 生成是重操作，单独限流
	generateLimit := middleware.RateLimit(rdb, 10, time.Minute)

	// ── 历史兼容路由（与旧客户端约定的路径） ──
	r.POST("/dtr/generateDTR",
		middleware.JWTAuth(jwtMgr, rdb),
		middleware.RoleAuth("admin", "hr"),
		generateLimit,
		h.DTR.Generate)

	// ── API v1 ──
	v1 := r.Group("/api/v1")

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 员工模块
		users := authorized.Group("/users")
		{
			users.GET("", middleware.RoleAuth("admin", "hr"), h.User.ListUsers)
			users.GET("/:id", h.User.GetUser)
			users.POST("", middleware.RoleAuth("admin", "hr"), h.User.CreateUser)
			users.PUT("/:id", middleware.RoleAuth("admin", "hr"), h.User.UpdateUser)
			users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.DeleteUser)
		}

		// 部门与职位模块
		departments := authorized.Group("/departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.POST("", middleware.RoleAuth("admin", "hr"), h.Department.CreateDepartment)
			departments.PUT("/:id", middleware.RoleAuth("admin", "hr"), h.Department.UpdateDepartment)
			departments.DELETE("/:id", middleware.RoleAuth("admin"), h.Department.DeleteDepartment)
		}
		jobTitles := authorized.Group("/job-titles")
		{
			jobTitles.GET("", h.Department.ListJobTitles)
			jobTitles.POST("", middleware.RoleAuth("admin", "hr"), h.Department.CreateJobTitle)
			jobTitles.PUT("/:id", middleware.RoleAuth("admin", "hr"), h.Department.UpdateJobTitle)
			jobTitles.DELETE("/:id", middleware.RoleAuth("admin"), h.Department.DeleteJobTitle)
		}

		// 考勤周期模块
		cutoffs := authorized.Group("/cutoffs")
		{
			cutoffs.GET("", h.Cutoff.ListCutoffs)
			cutoffs.GET("/active", h.Cutoff.GetActiveCutoff)
			cutoffs.GET("/:id", h.Cutoff.GetCutoff)
			cutoffs.POST("", middleware.RoleAuth("admin", "hr"), h.Cutoff.CreateCutoff)
			cutoffs.PUT("/:id", middleware.RoleAuth("admin", "hr"), h.Cutoff.UpdateCutoff)
			cutoffs.PUT("/:id/activate", middleware.RoleAuth("admin", "hr"), h.Cutoff.ActivateCutoff)
			cutoffs.DELETE("/:id", middleware.RoleAuth("admin"), h.Cutoff.DeleteCutoff)
		}

		// 班表模块
		templates := authorized.Group("/schedule-templates")
		{
			templates.GET("", h.Schedule.ListTemplates)
			templates.GET("/:id", h.Schedule.GetTemplate)
			templates.POST("", middleware.RoleAuth("admin", "hr"), h.Schedule.CreateTemplate)
			templates.PUT("/:id", middleware.RoleAuth("admin", "hr"), h.Schedule.UpdateTemplate)
			templates.DELETE("/:id", middleware.RoleAuth("admin"), h.Schedule.DeleteTemplate)
		}
		assignments := authorized.Group("/schedule-assignments")
		{
			assignments.GET("", h.Schedule.ListAssignments)
			assignments.POST("", middleware.RoleAuth("admin", "hr"), h.Schedule.CreateAssignment)
			assignments.DELETE("/:id", middleware.RoleAuth("admin", "hr"), h.Schedule.DeleteAssignment)
		}
		adjustments := authorized.Group("/schedule-adjustments")
		{
			adjustments.GET("", h.Schedule.ListAdjustments)
			adjustments.POST("", h.Schedule.CreateAdjustment)
			adjustments.PUT("/:id/approve", middleware.RoleAuth("admin", "hr"), h.Schedule.ApproveAdjustment)
			adjustments.PUT("/:id/reject", middleware.RoleAuth("admin", "hr"), h.Schedule.RejectAdjustment)
			adjustments.PUT("/:id/cancel", h.Schedule.CancelAdjustment)
		}
		authorized.GET("/schedule/resolve", h.Schedule.ResolveShift)

		// 打卡与补卡模块
		attendance := authorized.Group("/attendance")
		{
			attendance.GET("", h.Attendance.ListAttendance)
			attendance.POST("/clock-in", h.Attendance.ClockIn)
			attendance.POST("/clock-out", h.Attendance.ClockOut)
		}
		timeAdjustments := authorized.Group("/time-adjustments")
		{
			timeAdjustments.GET("", h.TimeAdjustment.ListTimeAdjustments)
			timeAdjustments.POST("", middleware.RoleAuth("admin", "hr"), h.TimeAdjustment.CreateTimeAdjustment)
			timeAdjustments.DELETE("/:id", middleware.RoleAuth("admin", "hr"), h.TimeAdjustment.DeleteTimeAdjustment)
		}

		// 请假模块
		leaves := authorized.Group("/leaves")
		{
			leaves.GET("", h.Leave.ListLeaves)
			leaves.POST("", h.Leave.CreateLeave)
			leaves.PUT("/:id/approve", middleware.RoleAuth("admin", "hr"), h.Leave.ApproveLeave)
			leaves.PUT("/:id/reject", middleware.RoleAuth("admin", "hr"), h.Leave.RejectLeave)
			leaves.PUT("/:id/cancel", h.Leave.CancelLeave)
		}

		// 加班模块
		overtimes := authorized.Group("/overtimes")
		{
			overtimes.GET("", h.Overtime.ListOvertimes)
			overtimes.POST("", h.Overtime.CreateOvertime)
			overtimes.PUT("/:id/approve", middleware.RoleAuth("admin", "hr"), h.Overtime.ApproveOvertime)
			overtimes.PUT("/:id/reject", middleware.RoleAuth("admin", "hr"), h.Overtime.RejectOvertime)
			overtimes.PUT("/:id/cancel", h.Overtime.CancelOvertime)
		}

		// DTR 模块
		dtr := authorized.Group("/dtr")
		{
			dtr.GET("", h.DTR.List)
			dtr.POST("/generate", middleware.RoleAuth("admin", "hr"), generateLimit, h.DTR.Generate)
		}

		// 导出模块
		export := authorized.Group("/export")
		{
			export.GET("/dtr", middleware.RoleAuth("admin", "hr"), h.Export.ExportDTR)
			export.GET("/schedule.ics", h.Export.ExportScheduleICS)
		}
	}

	return r
}
