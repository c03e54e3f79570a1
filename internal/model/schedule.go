package model

// Schedule 排班表，对应 schedules，通过 schedule_of_time_periods 关联多个时间段
type Schedule struct {
	ScheduleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	BaseModel
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// ScheduleOfTimePeriod 排班表与时间段的关联表，对应 schedule_of_time_periods
type ScheduleOfTimePeriod struct {
	ScheduleOfTimePeriodID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_of_time_period_id"`
	ScheduleID             string `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_time_period" json:"schedule_id"`
	TimePeriodID           string `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_time_period" json:"time_period_id"`
	BaseModel

	// 关联
	Schedule   *Schedule   `gorm:"foreignKey:ScheduleID;references:ScheduleID;constraint:OnDelete:CASCADE"     json:"schedule,omitempty"`
	TimePeriod *TimePeriod `gorm:"foreignKey:TimePeriodID;references:TimePeriodID;constraint:OnDelete:CASCADE" json:"time_period,omitempty"`
}

// TableName 指定表名
func (ScheduleOfTimePeriod) TableName() string { return "schedule_of_time_periods" }
