package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"timecard/backend/internal/model"
)

// ── 班次解析 ──
// 打卡时的迟到判定与 DTR 骨架构建必须使用完全相同的解析逻辑，
// 因此抽成一个无副作用的纯函数，两处调用点共享

// RestDayShiftLabel 休息日的班次标签
const RestDayShiftLabel = "REST DAY"

// 班次来源
const (
	ShiftSourceAdjustment = "adjustment"
	ShiftSourceAssignment = "assignment"
)

// ResolvedShift 某员工某日的权威班次
type ResolvedShift struct {
	TimeIn  string // "HH:MM"
	TimeOut string // "HH:MM"
	Label   string // 写入 DTR work_shift 的班次标签
	Source  string // adjustment | assignment
}

// ResolveShift 解析某日的生效班次，返回 nil 表示休息日。
// 优先级：
//  1. 该日存在 approved 的单日改班 → 无条件生效，标签为 "<in> - <out> (Sched Adjusted)"
//  2. 生效日期 ≤ 该日、且模板处于启用状态的指派中，取生效日期最晚者；
//     生效日期相同时取主键最大者（取最新创建的指派，规则需保持确定性）
//  3. 生效模板的周班表中没有该日星期的条目 → 休息日
func ResolveShift(date time.Time, assignments []model.UserScheduleAssignment, adjustment *model.ScheduleAdjustment) *ResolvedShift {
	if adjustment != nil && adjustment.Status == model.StatusApproved {
		return &ResolvedShift{
			TimeIn:  adjustment.TimeIn,
			TimeOut: adjustment.TimeOut,
			Label:   fmt.Sprintf("%s - %s (Sched Adjusted)", adjustment.TimeIn, adjustment.TimeOut),
			Source:  ShiftSourceAdjustment,
		}
	}

	var effective *model.UserScheduleAssignment
	for i := range assignments {
		asg := &assignments[i]
		if asg.Template == nil || !asg.Template.IsActive {
			continue
		}
		if asg.EffectivityDate.After(date) {
			continue
		}
		if effective == nil ||
			asg.EffectivityDate.After(effective.EffectivityDate) ||
			(asg.EffectivityDate.Equal(effective.EffectivityDate) && asg.AssignmentID > effective.AssignmentID) {
			effective = asg
		}
	}
	if effective == nil {
		return nil
	}

	shift, ok := effective.Template.Days[date.Weekday().String()]
	if !ok {
		return nil
	}
	return &ResolvedShift{
		TimeIn:  shift.In,
		TimeOut: shift.Out,
		Label:   effective.Template.Title,
		Source:  ShiftSourceAssignment,
	}
}

// ── 时间计算辅助 ──

// minutesOfDay 将 "HH:MM" 解析为当日分钟数
func minutesOfDay(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("无效的时间格式: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("无效的时间格式: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("无效的时间格式: %q", s)
	}
	return h*60 + m, nil
}

// round2 四舍五入到 2 位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
