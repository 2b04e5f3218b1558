package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/model"
)

func setupTestScheduleService() (ScheduleService, *testRepos, uint) {
	repos := newTestRepos()
	user := &model.User{Name: "王五", Email: "wang@example.com", EmployeeNo: "EMP003", Role: "employee"}
	_ = repos.user.Create(context.Background(), user)

	svc := NewScheduleService(repos.toRepository(), zap.NewNop())
	return svc, repos, user.UserID
}

// ────────────────────── 班表模板 ──────────────────────

func TestScheduleService_CreateTemplate(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	resp, err := svc.CreateTemplate(context.Background(), &dto.CreateScheduleTemplateRequest{
		Title: "Day Shift",
		Days: map[string]dto.ShiftTimeDTO{
			"Monday": {In: "08:00", Out: "17:00"},
			"Friday": {In: "08:00", Out: "12:00"},
		},
	}, 1)
	if err != nil {
		t.Fatalf("CreateTemplate 失败: %v", err)
	}
	if !resp.IsActive {
		t.Error("新建模板应默认启用")
	}
	if len(resp.Days) != 2 {
		t.Errorf("days 条目数 = %d，期望 2", len(resp.Days))
	}
}

func TestScheduleService_CreateTemplate_InvalidDays(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	cases := []struct {
		name string
		days map[string]dto.ShiftTimeDTO
	}{
		{"无效星期名", map[string]dto.ShiftTimeDTO{"Funday": {In: "08:00", Out: "17:00"}}},
		{"无效时间", map[string]dto.ShiftTimeDTO{"Monday": {In: "8am", Out: "17:00"}}},
		{"结束不晚于开始", map[string]dto.ShiftTimeDTO{"Monday": {In: "17:00", Out: "08:00"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTemplate(context.Background(), &dto.CreateScheduleTemplateRequest{
				Title: "Bad", Days: tc.days,
			}, 1)
			if !errors.Is(err, ErrTemplateDaysInvalid) {
				t.Errorf("期望 ErrTemplateDaysInvalid，得到: %v", err)
			}
		})
	}
}

func TestScheduleService_UpdateTemplate_Deactivate(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	created, err := svc.CreateTemplate(context.Background(), &dto.CreateScheduleTemplateRequest{
		Title: "Day Shift",
		Days:  map[string]dto.ShiftTimeDTO{"Monday": {In: "08:00", Out: "17:00"}},
	}, 1)
	if err != nil {
		t.Fatalf("CreateTemplate 失败: %v", err)
	}

	inactive := false
	updated, err := svc.UpdateTemplate(context.Background(), created.ScheduleTemplateID, &dto.UpdateScheduleTemplateRequest{
		IsActive: &inactive,
	}, 1)
	if err != nil {
		t.Fatalf("UpdateTemplate 失败: %v", err)
	}
	if updated.IsActive {
		t.Error("模板应已停用")
	}

	// 默认列表不含停用模板
	templates, err := svc.ListTemplates(context.Background(), false)
	if err != nil {
		t.Fatalf("ListTemplates 失败: %v", err)
	}
	if len(templates) != 0 {
		t.Errorf("停用模板不应出现在默认列表中，得到 %d 条", len(templates))
	}
}

// ────────────────────── 排班指派 ──────────────────────

func TestScheduleService_CreateAssignment(t *testing.T) {
	svc, _, userID := setupTestScheduleService()

	tmpl, err := svc.CreateTemplate(context.Background(), &dto.CreateScheduleTemplateRequest{
		Title: "Day Shift",
		Days:  map[string]dto.ShiftTimeDTO{"Monday": {In: "08:00", Out: "17:00"}},
	}, 1)
	if err != nil {
		t.Fatalf("CreateTemplate 失败: %v", err)
	}

	resp, err := svc.CreateAssignment(context.Background(), &dto.CreateAssignmentRequest{
		UserID: userID, ScheduleTemplateID: tmpl.ScheduleTemplateID, EffectivityDate: "2025-01-01",
	}, 1)
	if err != nil {
		t.Fatalf("CreateAssignment 失败: %v", err)
	}
	if resp.TemplateTitle != "Day Shift" {
		t.Errorf("template_title = %q，期望 Day Shift", resp.TemplateTitle)
	}
}

func TestScheduleService_CreateAssignment_TemplateNotFound(t *testing.T) {
	svc, _, userID := setupTestScheduleService()

	_, err := svc.CreateAssignment(context.Background(), &dto.CreateAssignmentRequest{
		UserID: userID, ScheduleTemplateID: 999, EffectivityDate: "2025-01-01",
	}, 1)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("期望 ErrTemplateNotFound，得到: %v", err)
	}
}

// ────────────────────── 改班申请 ──────────────────────

func TestScheduleService_ReviewAdjustment_Transitions(t *testing.T) {
	svc, _, userID := setupTestScheduleService()

	created, err := svc.CreateAdjustment(context.Background(), &dto.CreateScheduleAdjustmentRequest{
		UserID: userID, Date: "2025-02-02", TimeIn: "09:00", TimeOut: "13:00", Reason: "临时加派",
	}, userID)
	if err != nil {
		t.Fatalf("CreateAdjustment 失败: %v", err)
	}
	if created.Status != model.StatusPending {
		t.Errorf("新建申请 status = %q，期望 pending", created.Status)
	}

	reviewed, err := svc.ReviewAdjustment(context.Background(), created.ScheduleAdjustmentID, true, 2)
	if err != nil {
		t.Fatalf("ReviewAdjustment 失败: %v", err)
	}
	if reviewed.Status != model.StatusApproved {
		t.Errorf("审批后 status = %q，期望 approved", reviewed.Status)
	}
	if reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != 2 {
		t.Error("reviewed_by 应记录审批人")
	}

	// 已审批的申请不能重复流转
	if _, err := svc.ReviewAdjustment(context.Background(), created.ScheduleAdjustmentID, false, 2); !errors.Is(err, ErrAdjustmentNotPending) {
		t.Errorf("期望 ErrAdjustmentNotPending，得到: %v", err)
	}
	if err := svc.CancelAdjustment(context.Background(), created.ScheduleAdjustmentID, userID); !errors.Is(err, ErrAdjustmentNotPending) {
		t.Errorf("期望 ErrAdjustmentNotPending，得到: %v", err)
	}
}

func TestScheduleService_CancelAdjustment(t *testing.T) {
	svc, _, userID := setupTestScheduleService()

	created, err := svc.CreateAdjustment(context.Background(), &dto.CreateScheduleAdjustmentRequest{
		UserID: userID, Date: "2025-02-02", TimeIn: "09:00", TimeOut: "13:00",
	}, userID)
	if err != nil {
		t.Fatalf("CreateAdjustment 失败: %v", err)
	}

	if err := svc.CancelAdjustment(context.Background(), created.ScheduleAdjustmentID, userID); err != nil {
		t.Fatalf("CancelAdjustment 失败: %v", err)
	}

	// 撤回后的申请不能再审批
	if _, err := svc.ReviewAdjustment(context.Background(), created.ScheduleAdjustmentID, true, 2); !errors.Is(err, ErrAdjustmentNotPending) {
		t.Errorf("期望 ErrAdjustmentNotPending，得到: %v", err)
	}
}

// ────────────────────── ResolveShift 查询 ──────────────────────

func TestScheduleService_ResolveShift(t *testing.T) {
	svc, repos, userID := setupTestScheduleService()

	tmpl := weekdayTemplate(0, true)
	_ = repos.template.Create(context.Background(), tmpl)
	_ = repos.assignment.Create(context.Background(), &model.UserScheduleAssignment{
		UserID:             userID,
		ScheduleTemplateID: tmpl.ScheduleTemplateID,
		EffectivityDate:    date(2025, 1, 1),
		Template:           tmpl,
	})

	// 工作日
	resp, err := svc.ResolveShift(context.Background(), userID, "2025-02-03")
	if err != nil {
		t.Fatalf("ResolveShift 失败: %v", err)
	}
	if resp.IsRestDay {
		t.Error("周一不应是休息日")
	}
	if resp.TimeIn != "08:00" || resp.TimeOut != "17:00" {
		t.Errorf("班次时间 = %s-%s，期望 08:00-17:00", resp.TimeIn, resp.TimeOut)
	}
	if resp.Source != ShiftSourceAssignment {
		t.Errorf("source = %q，期望 assignment", resp.Source)
	}

	// 休息日
	resp, err = svc.ResolveShift(context.Background(), userID, "2025-02-02")
	if err != nil {
		t.Fatalf("ResolveShift 失败: %v", err)
	}
	if !resp.IsRestDay {
		t.Error("周日应是休息日")
	}
	if resp.Source != "rest_day" {
		t.Errorf("source = %q，期望 rest_day", resp.Source)
	}
}
