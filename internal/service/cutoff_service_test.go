package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"timecard/backend/internal/dto"
	pkgerrors "timecard/backend/pkg/errors"
)

func setupTestCutoffService() (CutoffService, *testRepos) {
	repos := newTestRepos()
	svc := NewCutoffService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestCutoffService_Create(t *testing.T) {
	svc, _ := setupTestCutoffService()

	resp, err := svc.Create(context.Background(), &dto.CreateCutoffRequest{
		Name: "2025-02 上半月", StartDate: "2025-02-01", CutoffDate: "2025-02-15",
	}, 1)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.Version != 1 {
		t.Errorf("新建周期 version = %d，期望 1", resp.Version)
	}
	if resp.StartDate != "2025-02-01" || resp.CutoffDate != "2025-02-15" {
		t.Errorf("日期范围错误: %s ~ %s", resp.StartDate, resp.CutoffDate)
	}
}

func TestCutoffService_Create_DateInvalid(t *testing.T) {
	svc, _ := setupTestCutoffService()

	_, err := svc.Create(context.Background(), &dto.CreateCutoffRequest{
		Name: "倒置周期", StartDate: "2025-02-15", CutoffDate: "2025-02-01",
	}, 1)
	if !errors.Is(err, ErrCutoffDateInvalid) {
		t.Errorf("期望 ErrCutoffDateInvalid，得到: %v", err)
	}
}

func TestCutoffService_Update_OptimisticLockConflict(t *testing.T) {
	svc, _ := setupTestCutoffService()

	created, err := svc.Create(context.Background(), &dto.CreateCutoffRequest{
		Name: "2025-02 上半月", StartDate: "2025-02-01", CutoffDate: "2025-02-15",
	}, 1)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	newName := "2025-02 上半月（修订）"
	updated, err := svc.Update(context.Background(), created.CutoffID, &dto.UpdateCutoffRequest{
		Name: &newName, Version: created.Version,
	}, 1)
	if err != nil {
		t.Fatalf("第一次 Update 失败: %v", err)
	}
	if updated.Version != created.Version+1 {
		t.Errorf("更新后 version = %d，期望 %d", updated.Version, created.Version+1)
	}

	// 携带旧版本号的并发更新必须被拒绝
	staleName := "过期的修改"
	_, err = svc.Update(context.Background(), created.CutoffID, &dto.UpdateCutoffRequest{
		Name: &staleName, Version: created.Version,
	}, 2)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}

func TestCutoffService_Update_DateInvalid(t *testing.T) {
	svc, _ := setupTestCutoffService()

	created, err := svc.Create(context.Background(), &dto.CreateCutoffRequest{
		Name: "2025-02 上半月", StartDate: "2025-02-01", CutoffDate: "2025-02-15",
	}, 1)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	badStart := "2025-03-01"
	_, err = svc.Update(context.Background(), created.CutoffID, &dto.UpdateCutoffRequest{
		StartDate: &badStart, Version: created.Version,
	}, 1)
	if !errors.Is(err, ErrCutoffDateInvalid) {
		t.Errorf("期望 ErrCutoffDateInvalid，得到: %v", err)
	}
}

func TestCutoffService_GetActive_None(t *testing.T) {
	svc, _ := setupTestCutoffService()

	_, err := svc.GetActive(context.Background())
	if !errors.Is(err, ErrNoActiveCutoff) {
		t.Errorf("期望 ErrNoActiveCutoff，得到: %v", err)
	}
}

func TestCutoffService_GetActive(t *testing.T) {
	svc, _ := setupTestCutoffService()

	created, err := svc.Create(context.Background(), &dto.CreateCutoffRequest{
		Name: "2025-02 上半月", StartDate: "2025-02-01", CutoffDate: "2025-02-15", IsActive: true,
	}, 1)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	active, err := svc.GetActive(context.Background())
	if err != nil {
		t.Fatalf("GetActive 失败: %v", err)
	}
	if active.CutoffID != created.CutoffID {
		t.Errorf("启用周期 ID = %d，期望 %d", active.CutoffID, created.CutoffID)
	}
}

func TestCutoffService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestCutoffService()

	if err := svc.Delete(context.Background(), 999, 1); !errors.Is(err, ErrCutoffNotFound) {
		t.Errorf("期望 ErrCutoffNotFound，得到: %v", err)
	}
}
