package repository

import (
	"context"

	"gorm.io/gorm"

	"museum-backend/internal/model"
)

// TimePeriodRepository 时间段数据访问接口
type TimePeriodRepository interface {
	Create(ctx context.Context, tp *model.TimePeriod) error
	GetByID(ctx context.Context, id string) (*model.TimePeriod, error)
	Update(ctx context.Context, tp *model.TimePeriod) error
	// DeleteByID 物理删除；记录不存在时不返回错误
	DeleteByID(ctx context.Context, id string) error
}

type timePeriodRepo struct {
	db *gorm.DB
}

// NewTimePeriodRepo 创建 TimePeriodRepository 实例
func NewTimePeriodRepo(db *gorm.DB) TimePeriodRepository {
	return &timePeriodRepo{db: db}
}

func (r *timePeriodRepo) Create(ctx context.Context, tp *model.TimePeriod) error {
	return r.db.WithContext(ctx).Create(tp).Error
}

func (r *timePeriodRepo) GetByID(ctx context.Context, id string) (*model.TimePeriod, error) {
	var tp model.TimePeriod
	err := r.db.WithContext(ctx).
		Where("time_period_id = ?", id).
		First(&tp).Error
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

func (r *timePeriodRepo) Update(ctx context.Context, tp *model.TimePeriod) error {
	return r.db.WithContext(ctx).
		Model(tp).
		Where("time_period_id = ?", tp.TimePeriodID).
		Updates(map[string]interface{}{
			"start_date": tp.StartDate,
			"end_date":   tp.EndDate,
			"updated_by": tp.UpdatedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *timePeriodRepo) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("time_period_id = ?", id).
		Delete(&model.TimePeriod{}).Error
}
