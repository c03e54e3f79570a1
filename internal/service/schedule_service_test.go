package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"museum-backend/internal/dto"
	apperrors "museum-backend/pkg/errors"
)

func setupTestScheduleService() (ScheduleService, TimePeriodService, *mockRepos) {
	repo, mocks := newMockRepository()
	tpSvc := NewTimePeriodService(repo, zap.NewNop())
	return NewScheduleService(repo, tpSvc, zap.NewNop()), tpSvc, mocks
}

// ── Create / GetByID ──

func TestScheduleService_CreateAndGet(t *testing.T) {
	svc, _, _ := setupTestScheduleService()
	ctx := context.Background()

	created, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if created.ScheduleID == "" {
		t.Fatal("期望分配排班表 ID")
	}

	got, err := svc.GetByID(ctx, created.ScheduleID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.ScheduleID != created.ScheduleID {
		t.Errorf("期望 ID=%s，实际=%s", created.ScheduleID, got.ScheduleID)
	}
}

func TestScheduleService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

// ── AddTimePeriod ──

func TestScheduleService_AddTimePeriod_Success(t *testing.T) {
	svc, tpSvc, mocks := setupTestScheduleService()
	ctx := context.Background()
	schedule, _ := svc.Create(ctx)
	tp, _ := tpSvc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T12:00"))

	if err := svc.AddTimePeriod(ctx, schedule.ScheduleID, tp.TimePeriodID); err != nil {
		t.Fatalf("AddTimePeriod 应成功: %v", err)
	}
	if len(mocks.links.links) != 1 {
		t.Fatalf("期望1条关联行，实际=%d", len(mocks.links.links))
	}
	link := mocks.links.links[0]
	if link.ScheduleID != schedule.ScheduleID || link.TimePeriodID != tp.TimePeriodID {
		t.Errorf("关联行字段错误: %+v", link)
	}
}

func TestScheduleService_AddTimePeriod_Duplicate(t *testing.T) {
	svc, tpSvc, _ := setupTestScheduleService()
	ctx := context.Background()
	schedule, _ := svc.Create(ctx)
	tp, _ := tpSvc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T12:00"))
	_ = svc.AddTimePeriod(ctx, schedule.ScheduleID, tp.TimePeriodID)

	err := svc.AddTimePeriod(ctx, schedule.ScheduleID, tp.TimePeriodID)
	if !errors.Is(err, ErrTimePeriodAlreadyInSchedule) {
		t.Errorf("期望 ErrTimePeriodAlreadyInSchedule，实际: %v", err)
	}
}

func TestScheduleService_AddTimePeriod_UnknownParents(t *testing.T) {
	svc, tpSvc, _ := setupTestScheduleService()
	ctx := context.Background()
	schedule, _ := svc.Create(ctx)
	tp, _ := tpSvc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T12:00"))

	err := svc.AddTimePeriod(ctx, "nonexistent", tp.TimePeriodID)
	if !errors.Is(err, ErrLinkScheduleNotExist) {
		t.Errorf("期望 ErrLinkScheduleNotExist，实际: %v", err)
	}

	err = svc.AddTimePeriod(ctx, schedule.ScheduleID, "nonexistent")
	if !errors.Is(err, ErrLinkTimePeriodNotExist) {
		t.Errorf("期望 ErrLinkTimePeriodNotExist，实际: %v", err)
	}
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("期望错误类别为 ErrInvalidArgument，实际: %v", err)
	}
}

// ── RemoveTimePeriod ──

func TestScheduleService_RemoveTimePeriod(t *testing.T) {
	svc, tpSvc, mocks := setupTestScheduleService()
	ctx := context.Background()
	schedule, _ := svc.Create(ctx)
	tp, _ := tpSvc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T12:00"))
	_ = svc.AddTimePeriod(ctx, schedule.ScheduleID, tp.TimePeriodID)

	if err := svc.RemoveTimePeriod(ctx, schedule.ScheduleID, tp.TimePeriodID); err != nil {
		t.Fatalf("RemoveTimePeriod 应成功: %v", err)
	}
	if len(mocks.links.links) != 0 {
		t.Error("关联行应已删除")
	}
	if _, ok := mocks.timePeriod.periods[tp.TimePeriodID]; !ok {
		t.Error("解除关联不应删除时间段本身")
	}

	if err := svc.RemoveTimePeriod(ctx, schedule.ScheduleID, tp.TimePeriodID); err != nil {
		t.Errorf("重复解除关联应静默成功: %v", err)
	}
}

// ── ListTimePeriods ──

func TestScheduleService_ListTimePeriods(t *testing.T) {
	svc, tpSvc, _ := setupTestScheduleService()
	ctx := context.Background()
	schedule, _ := svc.Create(ctx)
	first, _ := tpSvc.CreateTimePeriod(ctx, ts("2024-03-01T09:00"), ts("2024-03-01T12:00"))
	second, _ := tpSvc.CreateTimePeriod(ctx, ts("2024-02-01T09:00"), ts("2024-02-01T12:00"))
	_ = svc.AddTimePeriod(ctx, schedule.ScheduleID, first.TimePeriodID)
	_ = svc.AddTimePeriod(ctx, schedule.ScheduleID, second.TimePeriodID)

	got, periods, err := svc.ListTimePeriods(ctx, schedule.ScheduleID)
	if err != nil {
		t.Fatalf("ListTimePeriods 应成功: %v", err)
	}
	if got.ScheduleID != schedule.ScheduleID {
		t.Errorf("期望排班表 %s，实际=%s", schedule.ScheduleID, got.ScheduleID)
	}
	if len(periods) != 2 || periods[0].TimePeriodID != first.TimePeriodID || periods[1].TimePeriodID != second.TimePeriodID {
		t.Errorf("时间段顺序应与关联顺序一致: %+v", periods)
	}
}

func TestScheduleService_ListTimePeriods_NotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	_, _, err := svc.ListTimePeriods(context.Background(), "nonexistent")
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

// ── Delete ──

func TestScheduleService_Delete_CascadesLinks(t *testing.T) {
	svc, tpSvc, mocks := setupTestScheduleService()
	ctx := context.Background()
	schedule, _ := svc.Create(ctx)
	tp, _ := tpSvc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T12:00"))
	_ = svc.AddTimePeriod(ctx, schedule.ScheduleID, tp.TimePeriodID)

	if err := svc.Delete(ctx, schedule.ScheduleID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := mocks.schedule.schedules[schedule.ScheduleID]; ok {
		t.Error("排班表应已删除")
	}
	if len(mocks.links.links) != 0 {
		t.Error("关联行应一并删除")
	}
	if _, ok := mocks.timePeriod.periods[tp.TimePeriodID]; !ok {
		t.Error("删除排班表不应删除时间段")
	}
}

func TestScheduleService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	for _, id := range []string{uuid.NewString(), "nonexistent"} {
		if err := svc.Delete(context.Background(), id); !errors.Is(err, ErrScheduleNotFound) {
			t.Errorf("id=%q 期望 ErrScheduleNotFound，实际: %v", id, err)
		}
	}
}

func TestScheduleService_Delete_OwnedByEmployee(t *testing.T) {
	repo, mocks := newMockRepository()
	svc := NewScheduleService(repo, NewTimePeriodService(repo, zap.NewNop()), zap.NewNop())
	empSvc := NewEmployeeService(repo, zap.NewNop())
	ctx := context.Background()

	e, err := empSvc.Create(ctx, validCreateReq("owner@museum.org"))
	if err != nil {
		t.Fatalf("创建馆员失败: %v", err)
	}

	if err := svc.Delete(ctx, *e.ScheduleID); !errors.Is(err, ErrScheduleInUse) {
		t.Fatalf("期望 ErrScheduleInUse，实际: %v", err)
	}
	if _, ok := mocks.schedule.schedules[*e.ScheduleID]; !ok {
		t.Fatal("被占用的排班表不应删除")
	}

	employees, _, err := empSvc.List(ctx, &dto.PaginationRequest{})
	if err != nil || len(employees) != 1 {
		t.Fatalf("List 期望 1 个馆员，实际 %d, err=%v", len(employees), err)
	}
	if _, err := dto.ConvertEmployee(&employees[0]); err != nil {
		t.Errorf("馆员应仍可转换为 DTO: %v", err)
	}
}

func TestScheduleService_MalformedIDs(t *testing.T) {
	svc, _, mocks := setupTestScheduleService()
	ctx := context.Background()
	schedule, _ := svc.Create(ctx)

	if _, err := svc.GetByID(ctx, "abc"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("GetByID 期望 ErrScheduleNotFound，实际: %v", err)
	}
	if err := svc.AddTimePeriod(ctx, schedule.ScheduleID, "abc"); !errors.Is(err, ErrLinkTimePeriodNotExist) {
		t.Errorf("AddTimePeriod 期望 ErrLinkTimePeriodNotExist，实际: %v", err)
	}
	if err := svc.RemoveTimePeriod(ctx, "abc", "def"); err != nil {
		t.Errorf("RemoveTimePeriod 非法 ID 应静默成功: %v", err)
	}
	if len(mocks.links.links) != 0 {
		t.Error("不应产生关联行")
	}
}
