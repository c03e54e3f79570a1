package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"museum-backend/internal/model"
	apperrors "museum-backend/pkg/errors"
)

// ── 测试辅助 ──

func setupTestTimePeriodService() (TimePeriodService, *mockRepos) {
	repo, mocks := newMockRepository()
	svc := NewTimePeriodService(repo, zap.NewNop())
	return svc, mocks
}

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// ── CreateTimePeriod 测试 ──

func TestTimePeriodService_Create_Success(t *testing.T) {
	svc, mocks := setupTestTimePeriodService()
	start, end := ts("2024-01-01T00:00"), ts("2024-01-02T00:00")

	tp, err := svc.CreateTimePeriod(context.Background(), start, end)
	if err != nil {
		t.Fatalf("CreateTimePeriod 应成功: %v", err)
	}
	if tp.TimePeriodID == "" {
		t.Error("期望存储层分配 ID")
	}
	if !tp.StartDate.Equal(*start) || !tp.EndDate.Equal(*end) {
		t.Errorf("时间未保留: start=%v end=%v", tp.StartDate, tp.EndDate)
	}
	if _, ok := mocks.timePeriod.periods[tp.TimePeriodID]; !ok {
		t.Error("时间段未持久化")
	}
}

func TestTimePeriodService_Create_EqualDates(t *testing.T) {
	svc, _ := setupTestTimePeriodService()
	at := ts("2024-03-15T10:00")

	if _, err := svc.CreateTimePeriod(context.Background(), at, at); err != nil {
		t.Fatalf("开始等于结束应允许: %v", err)
	}
}

func TestTimePeriodService_Create_StartAfterEnd(t *testing.T) {
	svc, mocks := setupTestTimePeriodService()

	_, err := svc.CreateTimePeriod(context.Background(), ts("2024-01-02T00:00"), ts("2024-01-01T00:00"))
	if !errors.Is(err, ErrTimePeriodStartAfterEnd) {
		t.Errorf("期望 ErrTimePeriodStartAfterEnd，实际: %v", err)
	}
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("期望错误类别为 ErrInvalidArgument，实际: %v", err)
	}
	if len(mocks.timePeriod.periods) != 0 {
		t.Error("校验失败时不应写入")
	}
}

func TestTimePeriodService_Create_NilDates(t *testing.T) {
	svc, _ := setupTestTimePeriodService()
	at := ts("2024-01-01T00:00")

	cases := []struct {
		name       string
		start, end *time.Time
	}{
		{"start 为空", nil, at},
		{"end 为空", at, nil},
		{"均为空", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTimePeriod(context.Background(), tc.start, tc.end)
			if !errors.Is(err, ErrTimePeriodDatesRequired) {
				t.Errorf("期望 ErrTimePeriodDatesRequired，实际: %v", err)
			}
		})
	}
}

func TestTimePeriodService_Create_RepoError(t *testing.T) {
	svc, mocks := setupTestTimePeriodService()
	mocks.timePeriod.createErr = errMockDB

	_, err := svc.CreateTimePeriod(context.Background(), ts("2024-01-01T00:00"), ts("2024-01-01T01:00"))
	if !errors.Is(err, errMockDB) {
		t.Errorf("期望透传存储层错误，实际: %v", err)
	}
	if errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Error("存储层错误不应归为 ErrInvalidArgument")
	}
}

// ── GetTimePeriod 测试 ──

func TestTimePeriodService_Get_Found(t *testing.T) {
	svc, _ := setupTestTimePeriodService()
	created, _ := svc.CreateTimePeriod(context.Background(), ts("2024-01-01T09:00"), ts("2024-01-01T17:00"))

	tp, err := svc.GetTimePeriod(context.Background(), created.TimePeriodID)
	if err != nil {
		t.Fatalf("GetTimePeriod 应成功: %v", err)
	}
	if tp == nil || tp.TimePeriodID != created.TimePeriodID {
		t.Errorf("期望找到 %s，实际=%+v", created.TimePeriodID, tp)
	}
}

func TestTimePeriodService_Get_NotFoundReturnsNil(t *testing.T) {
	svc, _ := setupTestTimePeriodService()

	tp, err := svc.GetTimePeriod(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("不存在时不应返回错误: %v", err)
	}
	if tp != nil {
		t.Errorf("期望 nil，实际=%+v", tp)
	}
}

// ── DeleteTimePeriod 测试 ──

func TestTimePeriodService_Delete_Success(t *testing.T) {
	svc, mocks := setupTestTimePeriodService()
	ctx := context.Background()
	created, _ := svc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T17:00"))
	mocks.links.links = append(mocks.links.links, model.ScheduleOfTimePeriod{
		ScheduleID: "sch-1", TimePeriodID: created.TimePeriodID,
	})

	if err := svc.DeleteTimePeriod(ctx, created.TimePeriodID); err != nil {
		t.Fatalf("DeleteTimePeriod 应成功: %v", err)
	}
	if _, ok := mocks.timePeriod.periods[created.TimePeriodID]; ok {
		t.Error("时间段应已删除")
	}
	if len(mocks.links.links) != 0 {
		t.Error("关联行应一并删除")
	}
}

func TestTimePeriodService_Delete_NonexistentIsNoop(t *testing.T) {
	svc, _ := setupTestTimePeriodService()

	if err := svc.DeleteTimePeriod(context.Background(), uuid.NewString()); err != nil {
		t.Errorf("删除不存在的 ID 不应报错: %v", err)
	}
}

// ── 非法 ID（非 UUID）按不存在处理 ──

func TestTimePeriodService_MalformedID(t *testing.T) {
	svc, _ := setupTestTimePeriodService()
	ctx := context.Background()

	for _, id := range []string{"abc", "", "12345", "urn:uuid:" + uuid.NewString()} {
		tp, err := svc.GetTimePeriod(ctx, id)
		if err != nil || tp != nil {
			t.Errorf("Get(%q) 期望 (nil, nil)，实际 (%+v, %v)", id, tp, err)
		}
		if err := svc.DeleteTimePeriod(ctx, id); err != nil {
			t.Errorf("Delete(%q) 期望静默成功，实际: %v", id, err)
		}
		_, err = svc.EditTimePeriod(ctx, id, ts("2024-01-01T00:00"), ts("2024-01-02T00:00"))
		if !errors.Is(err, ErrTimePeriodNotExist) {
			t.Errorf("Edit(%q) 期望 ErrTimePeriodNotExist，实际: %v", id, err)
		}
	}
}

func TestTimePeriodService_Edit_MalformedIDWithInvalidDates(t *testing.T) {
	svc, _ := setupTestTimePeriodService()

	_, err := svc.EditTimePeriod(context.Background(), "abc", ts("2024-01-02T00:00"), ts("2024-01-01T00:00"))
	if !errors.Is(err, ErrTimePeriodStartAfterEnd) {
		t.Errorf("日期校验应先于 ID 校验，实际: %v", err)
	}
}

// ── EditTimePeriod 测试 ──

func TestTimePeriodService_Edit_Success(t *testing.T) {
	svc, mocks := setupTestTimePeriodService()
	ctx := context.Background()
	created, _ := svc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T17:00"))

	newStart, newEnd := ts("2024-02-01T10:00"), ts("2024-02-01T12:00")
	edited, err := svc.EditTimePeriod(ctx, created.TimePeriodID, newStart, newEnd)
	if err != nil {
		t.Fatalf("EditTimePeriod 应成功: %v", err)
	}
	if edited.TimePeriodID != created.TimePeriodID {
		t.Errorf("ID 不应改变: %s -> %s", created.TimePeriodID, edited.TimePeriodID)
	}
	stored := mocks.timePeriod.periods[created.TimePeriodID]
	if !stored.StartDate.Equal(*newStart) || !stored.EndDate.Equal(*newEnd) {
		t.Errorf("存储的时间未更新: %v ~ %v", stored.StartDate, stored.EndDate)
	}
}

func TestTimePeriodService_Edit_NotExist(t *testing.T) {
	svc, _ := setupTestTimePeriodService()

	_, err := svc.EditTimePeriod(context.Background(), uuid.NewString(), ts("2024-01-01T00:00"), ts("2024-01-02T00:00"))
	if !errors.Is(err, ErrTimePeriodNotExist) {
		t.Errorf("期望 ErrTimePeriodNotExist，实际: %v", err)
	}
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("期望错误类别为 ErrInvalidArgument，实际: %v", err)
	}
}

func TestTimePeriodService_Edit_NotExistWithInvalidDates(t *testing.T) {
	svc, _ := setupTestTimePeriodService()

	_, err := svc.EditTimePeriod(context.Background(), "nonexistent", ts("2024-01-02T00:00"), ts("2024-01-01T00:00"))
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("期望 ErrInvalidArgument，实际: %v", err)
	}
}

func TestTimePeriodService_Edit_InvalidDates(t *testing.T) {
	svc, mocks := setupTestTimePeriodService()
	ctx := context.Background()
	created, _ := svc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T17:00"))

	if _, err := svc.EditTimePeriod(ctx, created.TimePeriodID, ts("2024-01-03T00:00"), ts("2024-01-02T00:00")); !errors.Is(err, ErrTimePeriodStartAfterEnd) {
		t.Errorf("期望 ErrTimePeriodStartAfterEnd，实际: %v", err)
	}
	if _, err := svc.EditTimePeriod(ctx, created.TimePeriodID, nil, ts("2024-01-02T00:00")); !errors.Is(err, ErrTimePeriodDatesRequired) {
		t.Errorf("期望 ErrTimePeriodDatesRequired，实际: %v", err)
	}

	stored := mocks.timePeriod.periods[created.TimePeriodID]
	if !stored.StartDate.Equal(*ts("2024-01-01T09:00")) {
		t.Error("校验失败时不应修改已存储的时间段")
	}
}

// ── GetTimePeriodsOfSchedule 测试 ──

func TestTimePeriodService_GetOfSchedule_KeepsStoreOrder(t *testing.T) {
	svc, mocks := setupTestTimePeriodService()
	ctx := context.Background()
	schedule := &model.Schedule{ScheduleID: "sch-1"}

	late, _ := svc.CreateTimePeriod(ctx, ts("2024-05-01T09:00"), ts("2024-05-01T12:00"))
	early, _ := svc.CreateTimePeriod(ctx, ts("2024-01-01T09:00"), ts("2024-01-01T12:00"))
	other, _ := svc.CreateTimePeriod(ctx, ts("2024-02-01T09:00"), ts("2024-02-01T12:00"))

	_ = mocks.links.Create(ctx, &model.ScheduleOfTimePeriod{ScheduleID: "sch-1", TimePeriodID: late.TimePeriodID})
	_ = mocks.links.Create(ctx, &model.ScheduleOfTimePeriod{ScheduleID: "sch-2", TimePeriodID: other.TimePeriodID})
	_ = mocks.links.Create(ctx, &model.ScheduleOfTimePeriod{ScheduleID: "sch-1", TimePeriodID: early.TimePeriodID})

	periods, err := svc.GetTimePeriodsOfSchedule(ctx, schedule)
	if err != nil {
		t.Fatalf("GetTimePeriodsOfSchedule 应成功: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("期望2个时间段，实际=%d", len(periods))
	}
	if periods[0].TimePeriodID != late.TimePeriodID || periods[1].TimePeriodID != early.TimePeriodID {
		t.Errorf("应保持关联行顺序: %s, %s", periods[0].TimePeriodID, periods[1].TimePeriodID)
	}
}

func TestTimePeriodService_GetOfSchedule_Empty(t *testing.T) {
	svc, _ := setupTestTimePeriodService()

	periods, err := svc.GetTimePeriodsOfSchedule(context.Background(), &model.Schedule{ScheduleID: "sch-empty"})
	if err != nil {
		t.Fatalf("GetTimePeriodsOfSchedule 应成功: %v", err)
	}
	if periods == nil || len(periods) != 0 {
		t.Errorf("期望空切片，实际=%v", periods)
	}
}

func TestTimePeriodService_GetOfSchedule_NilSchedule(t *testing.T) {
	svc, _ := setupTestTimePeriodService()

	_, err := svc.GetTimePeriodsOfSchedule(context.Background(), nil)
	if !errors.Is(err, ErrScheduleRequired) {
		t.Errorf("期望 ErrScheduleRequired，实际: %v", err)
	}
}

func TestTimePeriodService_GetOfSchedule_RepoError(t *testing.T) {
	svc, mocks := setupTestTimePeriodService()
	mocks.links.listErr = errMockDB

	_, err := svc.GetTimePeriodsOfSchedule(context.Background(), &model.Schedule{ScheduleID: "sch-1"})
	if !errors.Is(err, errMockDB) {
		t.Errorf("期望透传存储层错误，实际: %v", err)
	}
}
