package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"museum-backend/internal/repository"
	"museum-backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	TimePeriod TimePeriodService
	Schedule   ScheduleService
	Employee   EmployeeService
	Visitor    VisitorService
	Auth       AuthService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	timePeriod := NewTimePeriodService(repo, logger)
	schedule := NewScheduleService(repo, timePeriod, logger)
	employee := NewEmployeeService(repo, logger)
	visitor := NewVisitorService(repo, logger)

	return &Service{
		TimePeriod: timePeriod,
		Schedule:   schedule,
		Employee:   employee,
		Visitor:    visitor,
		Auth:       NewAuthService(repo, employee, visitor, jwtMgr, blacklist, logger),
		Export:     NewExportService(schedule, logger),
	}
}

// isValidID 主键均为 UUID；格式不合法的 ID 视为不存在，不再下发到数据库
// 只接受 36 位标准格式，urn:uuid: 前缀等变体 PostgreSQL 不认
func isValidID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
