package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"museum-backend/internal/model"
	"museum-backend/internal/repository"
	apperrors "museum-backend/pkg/errors"
)

// ── 时间段模块业务错误（均属于 ErrInvalidArgument） ──

var (
	ErrTimePeriodDatesRequired = fmt.Errorf("%w: 开始时间和结束时间不能为空", apperrors.ErrInvalidArgument)
	ErrTimePeriodStartAfterEnd = fmt.Errorf("%w: 开始时间不能晚于结束时间", apperrors.ErrInvalidArgument)
	ErrTimePeriodNotExist      = fmt.Errorf("%w: 时间段不存在", apperrors.ErrInvalidArgument)
	ErrScheduleRequired        = fmt.Errorf("%w: 排班表不能为空", apperrors.ErrInvalidArgument)
)

// TimePeriodService 时间段业务接口
type TimePeriodService interface {
	// GetTimePeriod 按 ID 查询；不存在时返回 (nil, nil)
	GetTimePeriod(ctx context.Context, id string) (*model.TimePeriod, error)
	CreateTimePeriod(ctx context.Context, startDate, endDate *time.Time) (*model.TimePeriod, error)
	// DeleteTimePeriod 删除时间段及其排班关联；ID 不存在时静默成功
	DeleteTimePeriod(ctx context.Context, id string) error
	EditTimePeriod(ctx context.Context, id string, startDate, endDate *time.Time) (*model.TimePeriod, error)
	// GetTimePeriodsOfSchedule 按关联行的存储顺序返回排班表下的全部时间段
	GetTimePeriodsOfSchedule(ctx context.Context, schedule *model.Schedule) ([]model.TimePeriod, error)
}

type timePeriodService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimePeriodService 创建 TimePeriodService 实例
func NewTimePeriodService(repo *repository.Repository, logger *zap.Logger) TimePeriodService {
	return &timePeriodService{repo: repo, logger: logger}
}

// validateTimeRange 开始、结束时间必填，且开始不得晚于结束（允许相等）
func validateTimeRange(startDate, endDate *time.Time) error {
	if startDate == nil || endDate == nil {
		return ErrTimePeriodDatesRequired
	}
	if startDate.After(*endDate) {
		return ErrTimePeriodStartAfterEnd
	}
	return nil
}

// ────────────────────── GetTimePeriod ──────────────────────

func (s *timePeriodService) GetTimePeriod(ctx context.Context, id string) (*model.TimePeriod, error) {
	if !isValidID(id) {
		return nil, nil
	}
	tp, err := s.repo.TimePeriod.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询时间段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return tp, nil
}

// ────────────────────── CreateTimePeriod ──────────────────────

func (s *timePeriodService) CreateTimePeriod(ctx context.Context, startDate, endDate *time.Time) (*model.TimePeriod, error) {
	if err := validateTimeRange(startDate, endDate); err != nil {
		return nil, err
	}

	tp := &model.TimePeriod{
		StartDate: *startDate,
		EndDate:   *endDate,
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.TimePeriod.Create(ctx, tp)
	})
	if err != nil {
		s.logger.Error("创建时间段失败", zap.Error(err))
		return nil, err
	}

	return tp, nil
}

// ────────────────────── DeleteTimePeriod ──────────────────────

func (s *timePeriodService) DeleteTimePeriod(ctx context.Context, id string) error {
	if !isValidID(id) {
		return nil
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.ScheduleOfTimePeriod.DeleteByTimePeriod(ctx, id); err != nil {
			return err
		}
		return tx.TimePeriod.DeleteByID(ctx, id)
	})
	if err != nil {
		s.logger.Error("删除时间段失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── EditTimePeriod ──────────────────────

func (s *timePeriodService) EditTimePeriod(ctx context.Context, id string, startDate, endDate *time.Time) (*model.TimePeriod, error) {
	if err := validateTimeRange(startDate, endDate); err != nil {
		return nil, err
	}
	if !isValidID(id) {
		return nil, ErrTimePeriodNotExist
	}

	var edited *model.TimePeriod
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		tp, err := tx.TimePeriod.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTimePeriodNotExist
			}
			return err
		}

		tp.StartDate = *startDate
		tp.EndDate = *endDate
		if err := tx.TimePeriod.Update(ctx, tp); err != nil {
			return err
		}
		edited = tp
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			s.logger.Error("更新时间段失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	return edited, nil
}

// ────────────────────── GetTimePeriodsOfSchedule ──────────────────────

func (s *timePeriodService) GetTimePeriodsOfSchedule(ctx context.Context, schedule *model.Schedule) ([]model.TimePeriod, error) {
	if schedule == nil {
		return nil, ErrScheduleRequired
	}

	links, err := s.repo.ScheduleOfTimePeriod.ListBySchedule(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("查询排班表时间段失败", zap.String("schedule_id", schedule.ScheduleID), zap.Error(err))
		return nil, err
	}

	periods := make([]model.TimePeriod, 0, len(links))
	for _, link := range links {
		if link.TimePeriod != nil {
			periods = append(periods, *link.TimePeriod)
		}
	}
	return periods, nil
}
