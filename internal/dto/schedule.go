package dto

// ── 排班表模块 DTO ──

// ScheduleDto 排班表响应，仅包含标识
type ScheduleDto struct {
	ID string `json:"id"`
}

// ScheduleTimePeriodsResponse 排班表下的时间段列表
type ScheduleTimePeriodsResponse struct {
	Schedule    ScheduleDto     `json:"schedule"`
	TimePeriods []TimePeriodDto `json:"time_periods"`
}
