package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"timecard/backend/internal/service"
	"timecard/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportDTR 导出某员工某周期的 DTR 报表
// GET /api/v1/export/dtr?user_id=1&cutoff_id=2
func (h *ExportHandler) ExportDTR(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, "无效的 user_id")
		return
	}
	cutoffID, err := strconv.ParseUint(c.Query("cutoff_id"), 10, 32)
	if err != nil || cutoffID == 0 {
		response.BadRequest(c, "无效的 cutoff_id")
		return
	}

	buf, filename, err := h.exportSvc.ExportDTR(c.Request.Context(), uint(userID), uint(cutoffID))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportScheduleICS 导出某员工区间内的班表为 iCalendar 订阅文件
// GET /api/v1/export/schedule.ics?user_id=1&start_date=2025-02-01&end_date=2025-02-28
func (h *ExportHandler) ExportScheduleICS(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		response.BadRequest(c, "无效的 user_id")
		return
	}
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		response.BadRequest(c, "start_date 与 end_date 不能为空")
		return
	}

	content, filename, err := h.exportSvc.ExportScheduleICS(c.Request.Context(), uint(userID), startDate, endDate)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, icsContentType, []byte(content))
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCutoffNotFound),
		errors.Is(err, service.ErrDTRNotGenerated):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrExportRangeInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
