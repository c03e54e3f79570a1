package repository

import (
	"context"

	"gorm.io/gorm"

	"museum-backend/internal/model"
)

// ScheduleRepository 排班表数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleOfTimePeriodRepository 排班表-时间段关联数据访问接口
type ScheduleOfTimePeriodRepository interface {
	Create(ctx context.Context, link *model.ScheduleOfTimePeriod) error
	// ListBySchedule 返回排班表的全部关联行（预加载 TimePeriod），按关联创建时间升序
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleOfTimePeriod, error)
	Exists(ctx context.Context, scheduleID, timePeriodID string) (bool, error)
	Delete(ctx context.Context, scheduleID, timePeriodID string) error
	DeleteBySchedule(ctx context.Context, scheduleID string) error
	DeleteByTimePeriod(ctx context.Context, timePeriodID string) error
}

// ── Schedule Repository 实现 ──

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{}).Error
}

// ── ScheduleOfTimePeriod Repository 实现 ──

type scheduleOfTimePeriodRepo struct {
	db *gorm.DB
}

func NewScheduleOfTimePeriodRepo(db *gorm.DB) ScheduleOfTimePeriodRepository {
	return &scheduleOfTimePeriodRepo{db: db}
}

func (r *scheduleOfTimePeriodRepo) Create(ctx context.Context, link *model.ScheduleOfTimePeriod) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *scheduleOfTimePeriodRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleOfTimePeriod, error) {
	var links []model.ScheduleOfTimePeriod
	err := r.db.WithContext(ctx).
		Preload("TimePeriod").
		Where("schedule_id = ?", scheduleID).
		Order("created_at ASC, schedule_of_time_period_id ASC").
		Find(&links).Error
	return links, err
}

func (r *scheduleOfTimePeriodRepo) Exists(ctx context.Context, scheduleID, timePeriodID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleOfTimePeriod{}).
		Where("schedule_id = ? AND time_period_id = ?", scheduleID, timePeriodID).
		Count(&count).Error
	return count > 0, err
}

func (r *scheduleOfTimePeriodRepo) Delete(ctx context.Context, scheduleID, timePeriodID string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ? AND time_period_id = ?", scheduleID, timePeriodID).
		Delete(&model.ScheduleOfTimePeriod{}).Error
}

func (r *scheduleOfTimePeriodRepo) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Delete(&model.ScheduleOfTimePeriod{}).Error
}

func (r *scheduleOfTimePeriodRepo) DeleteByTimePeriod(ctx context.Context, timePeriodID string) error {
	return r.db.WithContext(ctx).
		Where("time_period_id = ?", timePeriodID).
		Delete(&model.ScheduleOfTimePeriod{}).Error
}
