package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"timecard/backend/internal/dto"
	"timecard/backend/internal/model"
)

func setupTestLeaveService() (LeaveService, uint) {
	repos := newTestRepos()
	user := &model.User{Name: "赵六", Email: "zhao@example.com", EmployeeNo: "EMP004", Role: "employee"}
	_ = repos.user.Create(context.Background(), user)

	svc := NewLeaveService(repos.toRepository(), zap.NewNop())
	return svc, user.UserID
}

func TestLeaveService_Create(t *testing.T) {
	svc, userID := setupTestLeaveService()

	resp, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID: userID, Type: "Sick", StartDate: "2025-02-03", EndDate: "2025-02-05", Reason: "感冒",
	}, userID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.Status != model.StatusPending {
		t.Errorf("新建申请 status = %q，期望 pending", resp.Status)
	}
}

func TestLeaveService_Create_RangeInvalid(t *testing.T) {
	svc, userID := setupTestLeaveService()

	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID: userID, Type: "Sick", StartDate: "2025-02-05", EndDate: "2025-02-03",
	}, userID)
	if !errors.Is(err, ErrLeaveRangeInvalid) {
		t.Errorf("期望 ErrLeaveRangeInvalid，得到: %v", err)
	}
}

func TestLeaveService_Review_PendingOnly(t *testing.T) {
	svc, userID := setupTestLeaveService()

	created, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID: userID, Type: "Vacation", StartDate: "2025-02-03", EndDate: "2025-02-03",
	}, userID)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), created.LeaveRequestID, false, 2)
	if err != nil {
		t.Fatalf("Review 失败: %v", err)
	}
	if reviewed.Status != model.StatusRejected {
		t.Errorf("驳回后 status = %q，期望 rejected", reviewed.Status)
	}

	// 已驳回的申请不能再次审批或撤回
	if _, err := svc.Review(context.Background(), created.LeaveRequestID, true, 2); !errors.Is(err, ErrLeaveNotPending) {
		t.Errorf("期望 ErrLeaveNotPending，得到: %v", err)
	}
	if err := svc.Cancel(context.Background(), created.LeaveRequestID, userID); !errors.Is(err, ErrLeaveNotPending) {
		t.Errorf("期望 ErrLeaveNotPending，得到: %v", err)
	}
}

func TestLeaveService_ListByUser_StatusFilter(t *testing.T) {
	svc, userID := setupTestLeaveService()

	first, _ := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID: userID, Type: "Sick", StartDate: "2025-02-03", EndDate: "2025-02-03",
	}, userID)
	_, _ = svc.Create(context.Background(), &dto.CreateLeaveRequest{
		UserID: userID, Type: "Vacation", StartDate: "2025-02-10", EndDate: "2025-02-12",
	}, userID)
	if _, err := svc.Review(context.Background(), first.LeaveRequestID, true, 2); err != nil {
		t.Fatalf("Review 失败: %v", err)
	}

	approved, err := svc.ListByUser(context.Background(), userID, model.StatusApproved)
	if err != nil {
		t.Fatalf("ListByUser 失败: %v", err)
	}
	if len(approved) != 1 {
		t.Errorf("期望 1 条已批准申请，得到 %d 条", len(approved))
	}

	all, err := svc.ListByUser(context.Background(), userID, "")
	if err != nil {
		t.Fatalf("ListByUser 失败: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("期望 2 条申请，得到 %d 条", len(all))
	}
}
