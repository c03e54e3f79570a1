package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"museum-backend/internal/dto"
	"museum-backend/internal/model"
	"museum-backend/internal/repository"
)

// ── 馆员模块业务错误 ──

var (
	ErrEmployeeNotFound = errors.New("馆员不存在")
)

// EmployeeService 馆员业务接口
type EmployeeService interface {
	// Create 创建馆员，并在同一事务内为其建立专属排班表
	Create(ctx context.Context, req *dto.CreateMuseumUserRequest) (*model.Employee, error)
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]model.Employee, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateMuseumUserRequest) (*model.Employee, error)
	// Delete 删除馆员及其排班表
	Delete(ctx context.Context, id string) error
	// AssignSchedule 改用另一张排班表；原排班表及其关联在同一事务内删除
	AssignSchedule(ctx context.Context, id, scheduleID string) (*model.Employee, error)
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateMuseumUserRequest) (*model.Employee, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	employee := &model.Employee{
		MuseumUser: model.MuseumUser{
			Email:    email,
			Name:     name,
			Password: hash,
		},
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := ensureEmailAvailable(ctx, tx, email); err != nil {
			return err
		}

		schedule := &model.Schedule{}
		if err := tx.Schedule.Create(ctx, schedule); err != nil {
			return err
		}
		employee.ScheduleID = &schedule.ScheduleID
		employee.Schedule = schedule

		return tx.Employee.Create(ctx, employee)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建馆员失败", zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}

	return employee, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	if !isValidID(id) {
		return nil, ErrEmployeeNotFound
	}
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询馆员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return employee, nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.PaginationRequest) ([]model.Employee, int64, error) {
	employees, total, err := s.repo.Employee.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出馆员失败", zap.Error(err))
		return nil, 0, err
	}
	return employees, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateMuseumUserRequest) (*model.Employee, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		employee.Name = name
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			s.logger.Error("密码哈希失败", zap.Error(err))
			return nil, err
		}
		employee.Password = hash
	}

	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		s.logger.Error("更新馆员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return employee, nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return ErrEmployeeNotFound
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		employee, err := tx.Employee.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		if err := tx.Employee.Delete(ctx, id); err != nil {
			return err
		}
		if employee.ScheduleID == nil {
			return nil
		}
		if err := tx.ScheduleOfTimePeriod.DeleteBySchedule(ctx, *employee.ScheduleID); err != nil {
			return err
		}
		return tx.Schedule.Delete(ctx, *employee.ScheduleID)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("删除馆员失败", zap.String("id", id), zap.Error(err))
	}
	return err
}

// ────────────────────── AssignSchedule ──────────────────────

func (s *employeeService) AssignSchedule(ctx context.Context, id, scheduleID string) (*model.Employee, error) {
	switch {
	case !isValidID(id):
		return nil, ErrEmployeeNotFound
	case !isValidID(scheduleID):
		return nil, ErrLinkScheduleNotExist
	}

	var employee *model.Employee
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		e, err := tx.Employee.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}
		if e.ScheduleID != nil && *e.ScheduleID == scheduleID {
			employee = e
			return nil
		}

		schedule, err := tx.Schedule.GetByID(ctx, scheduleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLinkScheduleNotExist
			}
			return err
		}
		// employees.schedule_id 唯一，先查占用避免落到唯一索引冲突
		owned, err := tx.Employee.ExistsBySchedule(ctx, scheduleID)
		if err != nil {
			return err
		}
		if owned {
			return ErrScheduleInUse
		}

		previous := e.ScheduleID
		e.ScheduleID = &schedule.ScheduleID
		e.Schedule = schedule
		if err := tx.Employee.Update(ctx, e); err != nil {
			return err
		}

		if previous != nil {
			if err := tx.ScheduleOfTimePeriod.DeleteBySchedule(ctx, *previous); err != nil {
				return err
			}
			if err := tx.Schedule.Delete(ctx, *previous); err != nil {
				return err
			}
		}
		employee = e
		return nil
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("分配排班表失败", zap.String("id", id), zap.String("schedule_id", scheduleID), zap.Error(err))
		}
		return nil, err
	}
	return employee, nil
}
