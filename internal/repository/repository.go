package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	TimePeriod           TimePeriodRepository
	ScheduleOfTimePeriod ScheduleOfTimePeriodRepository
	Schedule             ScheduleRepository
	Employee             EmployeeRepository
	Visitor              VisitorRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:                   db,
		TimePeriod:           NewTimePeriodRepo(db),
		ScheduleOfTimePeriod: NewScheduleOfTimePeriodRepo(db),
		Schedule:             NewScheduleRepo(db),
		Employee:             NewEmployeeRepo(db),
		Visitor:              NewVisitorRepo(db),
	}
}

// Transaction 在同一个数据库事务内执行 fn，fn 返回错误时整体回滚。
// 未绑定数据库（单元测试中手工组装的 Repository）时直接调用 fn。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
