package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"timecard/backend/config"
	"timecard/backend/internal/dto"
	"timecard/backend/internal/model"
	"timecard/backend/internal/repository"
	redispkg "timecard/backend/pkg/redis"
)

// ── DTR 模块业务错误 ──

var (
	ErrUserNotFound        = errors.New("员工不存在")
	ErrCutoffNotFound      = errors.New("考勤周期不存在")
	ErrCutoffRangeInvalid  = errors.New("考勤周期的结束日期早于开始日期")
	ErrCutoffRangeTooLarge = errors.New("考勤周期日期区间超出允许的最大天数")
	ErrDTRGenerationBusy   = errors.New("该员工在此周期的 DTR 正在生成中，请稍后重试")
	ErrDTRNotGenerated     = errors.New("该员工在此周期尚未生成 DTR")
)

// DTRService DTR 生成与查询业务接口
type DTRService interface {
	Generate(ctx context.Context, userID, cutoffID uint) ([]dto.DTRRecordResponse, error)
	List(ctx context.Context, userID, cutoffID uint) ([]dto.DTRRecordResponse, error)
}

type dtrService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redispkg.Client
	logger *zap.Logger
	locks  keyedMutex
}

// NewDTRService 创建 DTRService 实例。rdb 可为 nil，此时仅做进程内串行化。
func NewDTRService(cfg *config.Config, repo *repository.Repository, rdb *redispkg.Client, logger *zap.Logger) DTRService {
	return &dtrService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ── 进程内按键互斥 ──
// 同一 (user, cutoff) 的并发生成请求在进程内串行执行，
// 跨实例场景再叠加 Redis SETNX 锁

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// ────────────────────── Generate ──────────────────────

// Generate 为 (user, cutoff) 生成整个周期的日考勤记录。
// 完全幂等：重新生成会在单个事务内整组替换旧记录。
func (s *dtrService) Generate(ctx context.Context, userID, cutoffID uint) ([]dto.DTRRecordResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	cutoff, err := s.repo.Cutoff.GetByID(ctx, cutoffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCutoffNotFound
		}
		s.logger.Error("查询考勤周期失败", zap.Uint("cutoff_id", cutoffID), zap.Error(err))
		return nil, err
	}

	start := dateOnly(cutoff.StartDate)
	end := dateOnly(cutoff.CutoffDate)
	if end.Before(start) {
		return nil, ErrCutoffRangeInvalid
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > s.cfg.DTR.MaxRangeDays {
		return nil, ErrCutoffRangeTooLarge
	}

	// 删除+重插对同一 (user, cutoff) 是竞态，必须按键串行化
	lockKey := fmt.Sprintf("%d:%d", userID, cutoffID)
	unlock := s.locks.lock(lockKey)
	defer unlock()

	if s.rdb != nil {
		acquired, err := s.rdb.AcquireGenerationLock(ctx, lockKey, s.cfg.DTR.LockTTL)
		if err != nil {
			// Redis 故障时降级为仅进程内串行化
			s.logger.Warn("获取 DTR 生成锁失败，降级为进程内锁", zap.Error(err))
		} else if !acquired {
			return nil, ErrDTRGenerationBusy
		} else {
			defer func() {
				if err := s.rdb.ReleaseGenerationLock(context.Background(), lockKey); err != nil {
					s.logger.Warn("释放 DTR 生成锁失败", zap.Error(err))
				}
			}()
		}
	}

	sources, err := s.loadSources(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("加载 DTR 数据源失败",
			zap.Uint("user_id", userID), zap.Uint("cutoff_id", cutoffID), zap.Error(err))
		return nil, err
	}

	records, err := s.buildRecords(userID, cutoffID, start, end, sources)
	if err != nil {
		s.logger.Error("计算 DTR 记录失败",
			zap.Uint("user_id", userID), zap.Uint("cutoff_id", cutoffID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.DTR.ReplaceForCutoff(ctx, userID, cutoffID, records); err != nil {
		s.logger.Error("写入 DTR 记录失败",
			zap.Uint("user_id", userID), zap.Uint("cutoff_id", cutoffID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("DTR 生成完成",
		zap.Uint("user_id", userID),
		zap.Uint("cutoff_id", cutoffID),
		zap.Int("days", len(records)))

	return toDTRResponses(records), nil
}

// ────────────────────── List ──────────────────────

func (s *dtrService) List(ctx context.Context, userID, cutoffID uint) ([]dto.DTRRecordResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Cutoff.GetByID(ctx, cutoffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCutoffNotFound
		}
		return nil, err
	}

	records, err := s.repo.DTR.ListByUserAndCutoff(ctx, userID, cutoffID)
	if err != nil {
		s.logger.Error("查询 DTR 记录失败",
			zap.Uint("user_id", userID), zap.Uint("cutoff_id", cutoffID), zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrDTRNotGenerated
	}
	return toDTRResponses(records), nil
}

// ── 数据源加载 ──

// dtrSources 一次生成所需的全部数据源快照
type dtrSources struct {
	assignments []model.UserScheduleAssignment
	adjustments []model.ScheduleAdjustment
	punches     []model.AttendancePunch
	timeAdjusts []model.TimeAdjustment
	leaves      []model.LeaveRequest
	overtimes   []model.OvertimeRequest
}

// loadSources 并发拉取五类事件源与排班指派。
// 各查询只读不相交的表，无顺序依赖，任一失败即整体失败。
func (s *dtrService) loadSources(ctx context.Context, userID uint, start, end time.Time) (*dtrSources, error) {
	var src dtrSources
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		src.assignments, err = s.repo.ScheduleAssignment.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		src.adjustments, err = s.repo.ScheduleAdjustment.ListApprovedByUserAndRange(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		src.punches, err = s.repo.Attendance.ListByUserAndRange(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		src.timeAdjusts, err = s.repo.TimeAdjustment.ListByUserAndRange(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		src.leaves, err = s.repo.Leave.ListApprovedOverlapping(gctx, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		src.overtimes, err = s.repo.Overtime.ListApprovedByUserAndRange(gctx, userID, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &src, nil
}

// ── 骨架构建 + 事件叠加 + 工时计算 ──

func (s *dtrService) buildRecords(userID, cutoffID uint, start, end time.Time, src *dtrSources) ([]model.DTRRecord, error) {
	adjustmentByDate := make(map[string]*model.ScheduleAdjustment, len(src.adjustments))
	for i := range src.adjustments {
		adjustmentByDate[dateKey(src.adjustments[i].Date)] = &src.adjustments[i]
	}

	// 骨架：区间内每个日历日一条草稿记录，叠加阶段按日期 O(1) 定位
	var order []string
	recordByDate := make(map[string]*model.DTRRecord)
	shiftByDate := make(map[string]*ResolvedShift)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := dateKey(d)
		shift := ResolveShift(d, src.assignments, adjustmentByDate[key])
		rec := &model.DTRRecord{
			UserID:    userID,
			CutoffID:  cutoffID,
			Date:      d,
			WorkShift: RestDayShiftLabel,
			IsRestDay: true,
			Remarks:   "Rest Day",
		}
		if shift != nil {
			rec.WorkShift = shift.Label
			rec.IsRestDay = false
			rec.Remarks = "Absent"
		}
		order = append(order, key)
		recordByDate[key] = rec
		shiftByDate[key] = shift
	}

	// 第 1 遍：打卡记录写入实际时间，打卡时的备注原样透传
	for i := range src.punches {
		p := &src.punches[i]
		rec, ok := recordByDate[dateKey(p.Date)]
		if !ok {
			continue
		}
		timeIn := p.TimeIn
		rec.TimeIn = &timeIn
		if p.TimeOut != nil {
			timeOut := *p.TimeOut
			rec.TimeOut = &timeOut
		}
		if p.Remarks != "" {
			rec.Remarks = p.Remarks
		}
	}

	// 第 2 遍：补卡只填补缺失的时间，不覆盖打卡
	for i := range src.timeAdjusts {
		ta := &src.timeAdjusts[i]
		rec, ok := recordByDate[dateKey(ta.Date)]
		if !ok {
			continue
		}
		if rec.TimeIn == nil {
			timeIn := ta.TimeIn
			rec.TimeIn = &timeIn
		}
		if rec.TimeOut == nil {
			timeOut := ta.TimeOut
			rec.TimeOut = &timeOut
		}
		if rec.Remarks == "" || rec.Remarks == "Absent" {
			rec.Remarks = "Time Adjusted"
		}
	}

	// 第 3 遍：已批准请假强制清空时间并覆盖备注，优先级最高
	for i := range src.leaves {
		lv := &src.leaves[i]
		for d := dateOnly(lv.StartDate); !d.After(dateOnly(lv.EndDate)); d = d.AddDate(0, 0, 1) {
			rec, ok := recordByDate[dateKey(d)]
			if !ok {
				continue
			}
			rec.Remarks = lv.Type + " Leave"
			rec.TimeIn = nil
			rec.TimeOut = nil
		}
	}

	// 第 4 遍：改班备注叠加（骨架阶段已按改班解析过班次，此处是独立的第二次叠加）
	for i := range src.adjustments {
		adj := &src.adjustments[i]
		rec, ok := recordByDate[dateKey(adj.Date)]
		if !ok {
			continue
		}
		rec.WorkShift = fmt.Sprintf("%s - %s (Sched Adjusted)", adj.TimeIn, adj.TimeOut)
		if rec.Remarks == "Absent" {
			rec.Remarks = "Absent (Sched Adjusted)"
		} else {
			rec.Remarks += " (Sched Adjusted)"
		}
	}

	// 工时计算
	overtimeByDate := make(map[string]float64)
	for i := range src.overtimes {
		ot := &src.overtimes[i]
		startMin, err := minutesOfDay(ot.StartTime)
		if err != nil {
			return nil, fmt.Errorf("加班申请 %d: %w", ot.OvertimeRequestID, err)
		}
		endMin, err := minutesOfDay(ot.EndTime)
		if err != nil {
			return nil, fmt.Errorf("加班申请 %d: %w", ot.OvertimeRequestID, err)
		}
		// 同日多条加班申请的时长累加
		overtimeByDate[dateKey(ot.Date)] += float64(endMin-startMin) / 60
	}

	records := make([]model.DTRRecord, 0, len(order))
	for _, key := range order {
		rec := recordByDate[key]
		if err := computeHours(rec, shiftByDate[key]); err != nil {
			return nil, fmt.Errorf("日期 %s: %w", key, err)
		}
		if ot, ok := overtimeByDate[key]; ok {
			rec.Overtime = round2(rec.Overtime + ot)
		}
		records = append(records, *rec)
	}
	return records, nil
}

// computeHours 从合并后的实际时间与生效班次推导当日各项工时
func computeHours(rec *model.DTRRecord, shift *ResolvedShift) error {
	if rec.TimeIn != nil && rec.TimeOut != nil {
		inMin, err := minutesOfDay(*rec.TimeIn)
		if err != nil {
			return err
		}
		outMin, err := minutesOfDay(*rec.TimeOut)
		if err != nil {
			return err
		}
		// 负值与零不做钳制，跨午夜班次暂不支持
		rec.RegularHours = round2(float64(outMin-inMin) / 60)
	}

	if rec.IsRestDay || shift == nil {
		return nil
	}

	schedIn, err := minutesOfDay(shift.TimeIn)
	if err != nil {
		return err
	}
	schedOut, err := minutesOfDay(shift.TimeOut)
	if err != nil {
		return err
	}

	// 迟到：实际签到严格晚于班次开始才计
	if rec.TimeIn != nil {
		inMin, err := minutesOfDay(*rec.TimeIn)
		if err != nil {
			return err
		}
		if inMin > schedIn {
			rec.LateHours = round2(float64(inMin-schedIn) / 60)
		}
	}

	// 早退：实际签退严格早于班次结束才计
	if rec.TimeOut != nil {
		outMin, err := minutesOfDay(*rec.TimeOut)
		if err != nil {
			return err
		}
		if outMin < schedOut {
			rec.Undertime = round2(float64(schedOut-outMin) / 60)
		}
	}
	return nil
}

// ── 内部辅助方法 ──

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func toDTRResponses(records []model.DTRRecord) []dto.DTRRecordResponse {
	result := make([]dto.DTRRecordResponse, 0, len(records))
	for i := range records {
		rec := &records[i]
		result = append(result, dto.DTRRecordResponse{
			DTRRecordID:  rec.DTRRecordID,
			UserID:       rec.UserID,
			CutoffID:     rec.CutoffID,
			Date:         rec.Date.Format("2006-01-02"),
			WorkShift:    rec.WorkShift,
			IsRestDay:    rec.IsRestDay,
			TimeIn:       rec.TimeIn,
			TimeOut:      rec.TimeOut,
			RegularHours: rec.RegularHours,
			LateHours:    rec.LateHours,
			Undertime:    rec.Undertime,
			Overtime:     rec.Overtime,
			Remarks:      rec.Remarks,
		})
	}
	return result
}
