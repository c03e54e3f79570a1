package dto

import "time"

// ── 时间段模块 DTO ──

// TimePeriodRequest 创建 / 编辑时间段请求
// 两个字段均为指针：缺省由 Service 层按参数无效处理
type TimePeriodRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// TimePeriodDto 时间段响应
type TimePeriodDto struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
