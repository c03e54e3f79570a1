package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"museum-backend/internal/model"
	"museum-backend/internal/repository"
	apperrors "museum-backend/pkg/errors"
)

// ── 排班表模块业务错误 ──

var (
	ErrScheduleNotFound            = errors.New("排班表不存在")
	ErrTimePeriodAlreadyInSchedule = errors.New("该时间段已在排班表中")
	ErrLinkScheduleNotExist        = fmt.Errorf("%w: 排班表不存在", apperrors.ErrInvalidArgument)
	ErrLinkTimePeriodNotExist      = fmt.Errorf("%w: 时间段不存在", apperrors.ErrInvalidArgument)
	// ErrScheduleInUse 排班表已归属某位馆员，不能删除或再分配给他人
	ErrScheduleInUse = errors.New("排班表已被馆员占用")
)

// ScheduleService 排班表业务接口
type ScheduleService interface {
	Create(ctx context.Context) (*model.Schedule, error)
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	// Delete 删除排班表及其关联；被馆员占用时返回 ErrScheduleInUse
	Delete(ctx context.Context, id string) error
	AddTimePeriod(ctx context.Context, scheduleID, timePeriodID string) error
	// RemoveTimePeriod 解除关联；关联不存在时静默成功
	RemoveTimePeriod(ctx context.Context, scheduleID, timePeriodID string) error
	ListTimePeriods(ctx context.Context, scheduleID string) (*model.Schedule, []model.TimePeriod, error)
}

type scheduleService struct {
	repo          *repository.Repository
	timePeriodSvc TimePeriodService
	logger        *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, timePeriodSvc TimePeriodService, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, timePeriodSvc: timePeriodSvc, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context) (*model.Schedule, error) {
	schedule := &model.Schedule{}
	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建排班表失败", zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	if !isValidID(id) {
		return nil, ErrScheduleNotFound
	}
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排班表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return ErrScheduleNotFound
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Schedule.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleNotFound
			}
			return err
		}
		owned, err := tx.Employee.ExistsBySchedule(ctx, id)
		if err != nil {
			return err
		}
		if owned {
			return ErrScheduleInUse
		}
		if err := tx.ScheduleOfTimePeriod.DeleteBySchedule(ctx, id); err != nil {
			return err
		}
		return tx.Schedule.Delete(ctx, id)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("删除排班表失败", zap.String("id", id), zap.Error(err))
	}
	return err
}

// ────────────────────── AddTimePeriod ──────────────────────

func (s *scheduleService) AddTimePeriod(ctx context.Context, scheduleID, timePeriodID string) error {
	switch {
	case !isValidID(scheduleID):
		return ErrLinkScheduleNotExist
	case !isValidID(timePeriodID):
		return ErrLinkTimePeriodNotExist
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Schedule.GetByID(ctx, scheduleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLinkScheduleNotExist
			}
			return err
		}
		if _, err := tx.TimePeriod.GetByID(ctx, timePeriodID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLinkTimePeriodNotExist
			}
			return err
		}

		exists, err := tx.ScheduleOfTimePeriod.Exists(ctx, scheduleID, timePeriodID)
		if err != nil {
			return err
		}
		if exists {
			return ErrTimePeriodAlreadyInSchedule
		}

		return tx.ScheduleOfTimePeriod.Create(ctx, &model.ScheduleOfTimePeriod{
			ScheduleID:   scheduleID,
			TimePeriodID: timePeriodID,
		})
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("关联时间段失败",
			zap.String("schedule_id", scheduleID),
			zap.String("time_period_id", timePeriodID),
			zap.Error(err),
		)
	}
	return err
}

// ────────────────────── RemoveTimePeriod ──────────────────────

func (s *scheduleService) RemoveTimePeriod(ctx context.Context, scheduleID, timePeriodID string) error {
	if !isValidID(scheduleID) || !isValidID(timePeriodID) {
		return nil
	}
	if err := s.repo.ScheduleOfTimePeriod.Delete(ctx, scheduleID, timePeriodID); err != nil {
		s.logger.Error("解除时间段关联失败",
			zap.String("schedule_id", scheduleID),
			zap.String("time_period_id", timePeriodID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ────────────────────── ListTimePeriods ──────────────────────

func (s *scheduleService) ListTimePeriods(ctx context.Context, scheduleID string) (*model.Schedule, []model.TimePeriod, error) {
	schedule, err := s.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}

	periods, err := s.timePeriodSvc.GetTimePeriodsOfSchedule(ctx, schedule)
	if err != nil {
		return nil, nil, err
	}
	return schedule, periods, nil
}
