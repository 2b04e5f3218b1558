//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgerrors "timecard/backend/pkg/errors"

	"timecard/backend/internal/model"
	"timecard/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=timecard password=timecard_password dbname=timecard_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Department{},
		&model.JobTitle{},
		&model.User{},
		&model.Cutoff{},
		&model.ScheduleTemplate{},
		&model.UserScheduleAssignment{},
		&model.ScheduleAdjustment{},
		&model.AttendancePunch{},
		&model.TimeAdjustment{},
		&model.LeaveRequest{},
		&model.OvertimeRequest{},
		&model.DTRRecord{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (user *model.User, cutoff *model.Cutoff, tmpl *model.ScheduleTemplate, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	user = &model.User{
		Name:             "测试员工",
		Email:            fmt.Sprintf("test%d@example.com", time.Now().UnixNano()),
		EmployeeNo:       fmt.Sprintf("EMP%d", time.Now().UnixNano()),
		Role:             "employee",
		EmploymentStatus: "active",
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}

	cutoff = &model.Cutoff{
		Name:       fmt.Sprintf("测试周期-%d", time.Now().UnixNano()),
		StartDate:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		CutoffDate: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := testDB.WithContext(ctx).Create(cutoff).Error; err != nil {
		t.Fatalf("创建考勤周期失败: %v", err)
	}

	tmpl = &model.ScheduleTemplate{
		Title: fmt.Sprintf("测试班表-%d", time.Now().UnixNano()),
		Days: model.ScheduleDays{
			"Monday": {In: "08:00", Out: "17:00"},
			"Friday": {In: "08:00", Out: "17:00"},
		},
		IsActive: true,
	}
	if err := testDB.WithContext(ctx).Create(tmpl).Error; err != nil {
		t.Fatalf("创建班表模板失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("schedule_template_id = ?", tmpl.ScheduleTemplateID).Delete(&model.ScheduleTemplate{})
		testDB.Unscoped().Where("cutoff_id = ?", cutoff.CutoffID).Delete(&model.Cutoff{})
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: DTR Replace Semantics
// ═══════════════════════════════════════════════════════════

func TestDTR_ReplaceForCutoff(t *testing.T) {
	user, cutoff, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	defer testDB.Unscoped().Where("cutoff_id = ?", cutoff.CutoffID).Delete(&model.DTRRecord{})

	day := func(d int) time.Time {
		return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC)
	}

	// 第一次写入 3 条
	first := []model.DTRRecord{
		{UserID: user.UserID, CutoffID: cutoff.CutoffID, Date: day(1), WorkShift: "REST DAY", IsRestDay: true},
		{UserID: user.UserID, CutoffID: cutoff.CutoffID, Date: day(2), WorkShift: "REST DAY", IsRestDay: true},
		{UserID: user.UserID, CutoffID: cutoff.CutoffID, Date: day(3), WorkShift: "08:00 - 17:00", Remarks: "Absent"},
	}
	if err := repo.DTR.ReplaceForCutoff(ctx, user.UserID, cutoff.CutoffID, first); err != nil {
		t.Fatalf("第一次 ReplaceForCutoff 失败: %v", err)
	}

	// 重新生成：写入 2 条，旧的 3 条应被整组替换
	second := []model.DTRRecord{
		{UserID: user.UserID, CutoffID: cutoff.CutoffID, Date: day(2), WorkShift: "REST DAY", IsRestDay: true},
		{UserID: user.UserID, CutoffID: cutoff.CutoffID, Date: day(1), WorkShift: "REST DAY", IsRestDay: true},
	}
	if err := repo.DTR.ReplaceForCutoff(ctx, user.UserID, cutoff.CutoffID, second); err != nil {
		t.Fatalf("第二次 ReplaceForCutoff 失败: %v", err)
	}

	got, err := repo.DTR.ListByUserAndCutoff(ctx, user.UserID, cutoff.CutoffID)
	if err != nil {
		t.Fatalf("ListByUserAndCutoff 失败: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("期望替换后剩 2 条，得到 %d 条", len(got))
	}
	// 按日期升序返回
	if !got[0].Date.Before(got[1].Date) {
		t.Errorf("期望按日期升序: %v, %v", got[0].Date, got[1].Date)
	}
}

func TestDTR_UniqueConstraint(t *testing.T) {
	user, cutoff, _, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	defer testDB.Unscoped().Where("cutoff_id = ?", cutoff.CutoffID).Delete(&model.DTRRecord{})

	rec := model.DTRRecord{
		UserID:    user.UserID,
		CutoffID:  cutoff.CutoffID,
		Date:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		WorkShift: "REST DAY",
		IsRestDay: true,
	}
	if err := testDB.WithContext(ctx).Create(&rec).Error; err != nil {
		t.Fatalf("创建 DTR 记录失败: %v", err)
	}

	dup := rec
	dup.DTRRecordID = 0
	err := testDB.WithContext(ctx).Create(&dup).Error
	if err == nil {
		t.Fatal("期望唯一约束违反，但创建成功了。确保已运行迁移中的 uq_dtr_user_cutoff_date 索引")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Optimistic Lock (Cutoff)
// ═══════════════════════════════════════════════════════════

func TestOptimisticLock_Cutoff_ConflictDetected(t *testing.T) {
	_, cutoff, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 模拟并发：获取两份副本
	copy1, _ := repo.Cutoff.GetByID(ctx, cutoff.CutoffID)
	copy2, _ := repo.Cutoff.GetByID(ctx, cutoff.CutoffID)

	// 第一次更新成功
	copy1.Name = "第一次修改"
	if err := repo.Cutoff.Update(ctx, copy1); err != nil {
		t.Fatalf("第一次更新应成功: %v", err)
	}

	// 第二次更新应失败（version 已过期）
	copy2.Name = "第二次修改"
	err := repo.Cutoff.Update(ctx, copy2)
	if err == nil {
		t.Fatal("期望乐观锁冲突错误，但更新成功了")
	}
	if err != pkgerrors.ErrOptimisticLock {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}

func TestOptimisticLock_Cutoff_VersionIncrement(t *testing.T) {
	_, cutoff, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if cutoff.Version != 1 {
		t.Errorf("初始 version 应为 1，得到: %d", cutoff.Version)
	}

	// 连续更新 3 次
	for i := 0; i < 3; i++ {
		got, _ := repo.Cutoff.GetByID(ctx, cutoff.CutoffID)
		got.Name = fmt.Sprintf("第 %d 次修改", i+1)
		if err := repo.Cutoff.Update(ctx, got); err != nil {
			t.Fatalf("第 %d 次更新失败: %v", i+1, err)
		}
	}

	final, _ := repo.Cutoff.GetByID(ctx, cutoff.CutoffID)
	if final.Version != 4 {
		t.Errorf("期望 version=4，得到: %d", final.Version)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Open Punch Lookup
// ═══════════════════════════════════════════════════════════

func TestAttendance_GetOpenByUser(t *testing.T) {
	user, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	defer testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.AttendancePunch{})

	// 无未闭合记录
	_, err := repo.Attendance.GetOpenByUser(ctx, user.UserID)
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("期望 ErrRecordNotFound，得到: %v", err)
	}

	out := "17:05"
	closed := &model.AttendancePunch{
		UserID:  user.UserID,
		Date:    time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		Weekday: "Monday",
		TimeIn:  "08:00",
		TimeOut: &out,
	}
	if err := repo.Attendance.Create(ctx, closed); err != nil {
		t.Fatalf("创建已闭合打卡失败: %v", err)
	}

	open := &model.AttendancePunch{
		UserID:  user.UserID,
		Date:    time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
		Weekday: "Tuesday",
		TimeIn:  "08:10",
	}
	if err := repo.Attendance.Create(ctx, open); err != nil {
		t.Fatalf("创建未闭合打卡失败: %v", err)
	}

	got, err := repo.Attendance.GetOpenByUser(ctx, user.UserID)
	if err != nil {
		t.Fatalf("GetOpenByUser 失败: %v", err)
	}
	if got.AttendanceID != open.AttendanceID {
		t.Errorf("期望返回未闭合记录 %d，得到 %d", open.AttendanceID, got.AttendanceID)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Approved Leave Overlap Query
// ═══════════════════════════════════════════════════════════

func TestLeave_ListApprovedOverlapping(t *testing.T) {
	user, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	defer testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.LeaveRequest{})

	day := func(d int) time.Time {
		return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC)
	}

	// 跨区间边界的已批准请假
	overlapping := &model.LeaveRequest{
		UserID:    user.UserID,
		Type:      "Sick",
		StartDate: day(14),
		EndDate:   day(16),
		Status:    model.StatusApproved,
	}
	// 区间外的已批准请假
	outside := &model.LeaveRequest{
		UserID:    user.UserID,
		Type:      "Vacation",
		StartDate: day(20),
		EndDate:   day(22),
		Status:    model.StatusApproved,
	}
	// 区间内但未批准
	pending := &model.LeaveRequest{
		UserID:    user.UserID,
		Type:      "Sick",
		StartDate: day(5),
		EndDate:   day(6),
		Status:    model.StatusPending,
	}
	for _, req := range []*model.LeaveRequest{overlapping, outside, pending} {
		if err := repo.Leave.Create(ctx, req); err != nil {
			t.Fatalf("创建请假失败: %v", err)
		}
	}

	got, err := repo.Leave.ListApprovedOverlapping(ctx, user.UserID, day(1), day(15))
	if err != nil {
		t.Fatalf("ListApprovedOverlapping 失败: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("期望 1 条交集请假，得到 %d 条", len(got))
	}
	if got[0].LeaveRequestID != overlapping.LeaveRequestID {
		t.Errorf("期望返回请假 %d，得到 %d", overlapping.LeaveRequestID, got[0].LeaveRequestID)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Soft Delete (User)
// ═══════════════════════════════════════════════════════════

func TestUser_SoftDelete(t *testing.T) {
	user, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.User.Delete(ctx, user.UserID, 1); err != nil {
		t.Fatalf("软删除失败: %v", err)
	}

	// 常规查询应找不到
	_, err := repo.User.GetByID(ctx, user.UserID)
	if err == nil {
		t.Fatal("软删除后应查不到记录")
	}

	// Unscoped 查询应能找到
	var found model.User
	err = testDB.Unscoped().Where("user_id = ?", user.UserID).First(&found).Error
	if err != nil {
		t.Fatalf("Unscoped 查询应能找到: %v", err)
	}
	if found.DeletedAt.Time.IsZero() {
		t.Error("DeletedAt 应已设置")
	}
	if found.DeletedBy == nil || *found.DeletedBy != 1 {
		t.Error("DeletedBy 应已设置为操作者")
	}
}
