package handler

import "museum-backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	TimePeriod *TimePeriodHandler
	Schedule   *ScheduleHandler
	Employee   *EmployeeHandler
	Visitor    *VisitorHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		TimePeriod: NewTimePeriodHandler(svc.TimePeriod),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Employee:   NewEmployeeHandler(svc.Employee),
		Visitor:    NewVisitorHandler(svc.Visitor),
		Export:     NewExportHandler(svc.Export),
	}
}
