package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/model"
)

func setupTestOvertimeService() (OvertimeService, uint) {
	repos := newTestRepos()
	user := &model.User{Name: "孙七", Email: "sun@example.com", EmployeeNo: "EMP005", Role: "employee"}
	_ = repos.user.Create(context.Background(), user)

	svc := NewOvertimeService(repos.toRepository(), zap.NewNop())
	return svc, user.UserID
}

func TestOvertimeService_Create(t *testing.T) {
	svc, userID := setupTestOvertimeService()

	resp, err := svc.Create(context.Background(), &dto.CreateOvertimeRequest{
		UserID: userID, Date: "2025-02-03", StartTime: "18:00", EndTime: "20:00", Reason: "版本上线",
	}, userID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.Status != model.StatusPending {
		t.Errorf("新建申请 status = %q，期望 pending", resp.Status)
	}
}

func TestOvertimeService_Create_RangeInvalid(t *testing.T) {
	svc, userID := setupTestOvertimeService()

	// 结束时间等于开始时间同样无效
	_, err := svc.Create(context.Background(), &dto.CreateOvertimeRequest{
		UserID: userID, Date: "2025-02-03", StartTime: "18:00", EndTime: "18:00",
	}, userID)
	if !errors.Is(err, ErrOvertimeRangeInvalid) {
		t.Errorf("期望 ErrOvertimeRangeInvalid，得到: %v", err)
	}
}

func TestOvertimeService_Create_InvalidTime(t *testing.T) {
	svc, userID := setupTestOvertimeService()

	_, err := svc.Create(context.Background(), &dto.CreateOvertimeRequest{
		UserID: userID, Date: "2025-02-03", StartTime: "6pm00", EndTime: "20:00",
	}, userID)
	if !errors.Is(err, ErrInvalidTime) {
		t.Errorf("期望 ErrInvalidTime，得到: %v", err)
	}
}

func TestOvertimeService_Review_PendingOnly(t *testing.T) {
	svc, userID := setupTestOvertimeService()

	created, err := svc.Create(context.Background(), &dto.CreateOvertimeRequest{
		UserID: userID, Date: "2025-02-03", StartTime: "18:00", EndTime: "20:00",
	}, userID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), created.OvertimeRequestID, true, 2)
	if err != nil {
		t.Fatalf("Review 失败: %v", err)
	}
	if reviewed.Status != model.StatusApproved {
		t.Errorf("审批后 status = %q，期望 approved", reviewed.Status)
	}
	if reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != 2 {
		t.Error("reviewed_by 应记录审批人")
	}

	if _, err := svc.Review(context.Background(), created.OvertimeRequestID, false, 2); !errors.Is(err, ErrOvertimeNotPending) {
		t.Errorf("期望 ErrOvertimeNotPending，得到: %v", err)
	}
}

func TestOvertimeService_Cancel(t *testing.T) {
	svc, userID := setupTestOvertimeService()

	created, err := svc.Create(context.Background(), &dto.CreateOvertimeRequest{
		UserID: userID, Date: "2025-02-03", StartTime: "18:00", EndTime: "20:00",
	}, userID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if err := svc.Cancel(context.Background(), created.OvertimeRequestID, userID); err != nil {
		t.Fatalf("Cancel 失败: %v", err)
	}
	if _, err := svc.Review(context.Background(), created.OvertimeRequestID, true, 2); !errors.Is(err, ErrOvertimeNotPending) {
		t.Errorf("期望 ErrOvertimeNotPending，得到: %v", err)
	}
}
