package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timecard/backend/internal/model"
	"timecard/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
	ErrExportRangeInvalid = errors.New("导出区间无效，起始日期需不晚于结束日期且不超过一年")
)

// 班表订阅导出的区间上限
const icsMaxRangeDays = 366

// ExportService 导出业务接口
//
// 设计说明：
//   - 将某员工某周期的 DTR 报表导出为 Excel (.xlsx)
//   - 导出前不重新生成，周期内无记录时返回 ErrDTRNotGenerated
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportDTR 导出 DTR 报表为 Excel
	ExportDTR(ctx context.Context, userID, cutoffID uint) (*bytes.Buffer, string, error)
	// ExportScheduleICS 导出某员工区间内的班表为 iCalendar 内容，可供日历应用订阅
	ExportScheduleICS(ctx context.Context, userID uint, startDate, endDate string) (string, string, error)
}

type exportService struct {
	repo   *repository.Repository
	dtr    DTRService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, dtr DTRService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, dtr: dtr, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportDTR — 导出 DTR 报表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "DTR"
//   - 标题行：员工姓名 + 周期名
//   - 列：日期 / 班次 / 签到 / 签退 / 正常工时 / 迟到 / 早退 / 加班 / 备注
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportDTR(ctx context.Context, userID, cutoffID uint) (*bytes.Buffer, string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, "", err
	}
	cutoff, err := s.repo.Cutoff.GetByID(ctx, cutoffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCutoffNotFound
		}
		s.logger.Error("查询考勤周期失败", zap.Uint("cutoff_id", cutoffID), zap.Error(err))
		return nil, "", err
	}

	records, err := s.dtr.List(ctx, userID, cutoffID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "DTR"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 26)
	f.SetColWidth(sheetName, "C", "D", 8)
	f.SetColWidth(sheetName, "E", "H", 10)
	f.SetColWidth(sheetName, "I", "I", 28)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — %s", user.Name, cutoff.Name))
	f.MergeCell(sheetName, "A1", "I1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"日期", "班次", "签到", "签退", "正常工时", "迟到", "早退", "加班", "备注"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}

	// 数据行
	row := 3
	var totalRegular, totalLate, totalUndertime, totalOvertime float64
	for i := range records {
		rec := &records[i]
		f.SetCellValue(sheetName, cell("A", row), rec.Date)
		f.SetCellValue(sheetName, cell("B", row), rec.WorkShift)
		f.SetCellValue(sheetName, cell("C", row), derefOr(rec.TimeIn, "-"))
		f.SetCellValue(sheetName, cell("D", row), derefOr(rec.TimeOut, "-"))
		f.SetCellValue(sheetName, cell("E", row), rec.RegularHours)
		f.SetCellValue(sheetName, cell("F", row), rec.LateHours)
		f.SetCellValue(sheetName, cell("G", row), rec.Undertime)
		f.SetCellValue(sheetName, cell("H", row), rec.Overtime)
		f.SetCellValue(sheetName, cell("I", row), rec.Remarks)

		totalRegular += rec.RegularHours
		totalLate += rec.LateHours
		totalUndertime += rec.Undertime
		totalOvertime += rec.Overtime
		row++
	}

	// 合计行
	f.SetCellValue(sheetName, cell("A", row), "合计")
	f.SetCellValue(sheetName, cell("E", row), round2(totalRegular))
	f.SetCellValue(sheetName, cell("F", row), round2(totalLate))
	f.SetCellValue(sheetName, cell("G", row), round2(totalUndertime))
	f.SetCellValue(sheetName, cell("H", row), round2(totalOvertime))

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("DTR_%s_%s.xlsx", user.EmployeeNo, cutoff.Name)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportScheduleICS — 导出班表为 iCalendar 订阅内容
// ═══════════════════════════════════════════════════════════
//
// 每个工作日生成一个 VEVENT：
//   - DTSTART/DTEND 取当日生效班次的上下班时间
//   - SUMMARY 取班次标签（指派模板标题或改班标签）
//   - 休息日不生成事件
//
// 返回值：content（序列化后的 ICS 文本）, filename（建议文件名）, error

func (s *exportService) ExportScheduleICS(ctx context.Context, userID uint, startDate, endDate string) (string, string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("user_id", userID), zap.Error(err))
		return "", "", err
	}

	start, err := parseDate(startDate)
	if err != nil {
		return "", "", err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return "", "", err
	}
	if end.Before(start) || int(end.Sub(start).Hours()/24)+1 > icsMaxRangeDays {
		return "", "", ErrExportRangeInvalid
	}

	assignments, err := s.repo.ScheduleAssignment.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询排班指派失败", zap.Uint("user_id", userID), zap.Error(err))
		return "", "", err
	}
	adjustments, err := s.repo.ScheduleAdjustment.ListApprovedByUserAndRange(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("查询改班申请失败", zap.Uint("user_id", userID), zap.Error(err))
		return "", "", err
	}
	adjustmentByDate := make(map[string]*model.ScheduleAdjustment, len(adjustments))
	for i := range adjustments {
		adjustmentByDate[dateKey(adjustments[i].Date)] = &adjustments[i]
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//timecard//DTR Schedule//CN")
	cal.SetXWRCalName(fmt.Sprintf("%s 班表", user.Name))

	now := time.Now()
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := dateKey(d)
		shift := ResolveShift(d, assignments, adjustmentByDate[key])
		if shift == nil {
			continue
		}

		inMin, err := minutesOfDay(shift.TimeIn)
		if err != nil {
			return "", "", err
		}
		outMin, err := minutesOfDay(shift.TimeOut)
		if err != nil {
			return "", "", err
		}

		evt := cal.AddEvent(fmt.Sprintf("shift-%d-%s@timecard", userID, key))
		evt.SetDtStampTime(now)
		evt.SetStartAt(time.Date(d.Year(), d.Month(), d.Day(), inMin/60, inMin%60, 0, 0, time.UTC))
		evt.SetEndAt(time.Date(d.Year(), d.Month(), d.Day(), outMin/60, outMin%60, 0, 0, time.UTC))
		evt.SetSummary(shift.Label)
	}

	filename := fmt.Sprintf("Schedule_%s_%s_%s.ics", user.EmployeeNo, startDate, endDate)
	return cal.Serialize(), filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
