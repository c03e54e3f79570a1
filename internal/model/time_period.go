package model

import "time"

// TimePeriod 时间段，对应 time_periods，约束 start_date <= end_date
type TimePeriod struct {
	TimePeriodID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_period_id"`
	StartDate    time.Time `gorm:"type:timestamptz;not null"                      json:"start_date"`
	EndDate      time.Time `gorm:"type:timestamptz;not null"                      json:"end_date"`
	BaseModel
}

// TableName 指定表名
func (TimePeriod) TableName() string { return "time_periods" }

// Duration 时间段长度
func (tp *TimePeriod) Duration() time.Duration { return tp.EndDate.Sub(tp.StartDate) }
