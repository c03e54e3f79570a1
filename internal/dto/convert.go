package dto

import (
	"fmt"

	"museum-backend/internal/model"
	apperrors "museum-backend/pkg/errors"
)

// ── 实体 → DTO 转换 ──
//
// 所有转换均为纯函数：入参为 nil 时返回包装 ErrInvalidArgument 的错误，不做任何 I/O。

var (
	ErrNilSchedule       = fmt.Errorf("%w: 排班表不存在", apperrors.ErrInvalidArgument)
	ErrNilEmployee       = fmt.Errorf("%w: 馆员不存在", apperrors.ErrInvalidArgument)
	ErrNilVisitor        = fmt.Errorf("%w: 访客不存在", apperrors.ErrInvalidArgument)
	ErrNilTimePeriod     = fmt.Errorf("%w: 时间段不存在", apperrors.ErrInvalidArgument)
	ErrUnsupportedEntity = fmt.Errorf("%w: 不支持转换的实体类型", apperrors.ErrInvalidArgument)
)

// ConvertSchedule 排班表 → ScheduleDto
func ConvertSchedule(schedule *model.Schedule) (*ScheduleDto, error) {
	if schedule == nil {
		return nil, ErrNilSchedule
	}
	return &ScheduleDto{ID: schedule.ScheduleID}, nil
}

// ConvertEmployee 馆员 → EmployeeDto。
// 未分配排班表的馆员无法转换，错误来自 ConvertSchedule。
func ConvertEmployee(employee *model.Employee) (*EmployeeDto, error) {
	if employee == nil {
		return nil, ErrNilEmployee
	}
	scheduleDto, err := ConvertSchedule(employee.Schedule)
	if err != nil {
		return nil, err
	}
	return &EmployeeDto{
		ID:       employee.MuseumUserID,
		Email:    employee.Email,
		Name:     employee.Name,
		Password: employee.Password,
		Schedule: scheduleDto,
	}, nil
}

// ConvertVisitor 访客 → MuseumUserDto
func ConvertVisitor(visitor *model.Visitor) (*MuseumUserDto, error) {
	if visitor == nil {
		return nil, ErrNilVisitor
	}
	return &MuseumUserDto{
		ID:       visitor.MuseumUserID,
		Email:    visitor.Email,
		Name:     visitor.Name,
		Password: visitor.Password,
	}, nil
}

// ConvertTimePeriod 时间段 → TimePeriodDto
func ConvertTimePeriod(tp *model.TimePeriod) (*TimePeriodDto, error) {
	if tp == nil {
		return nil, ErrNilTimePeriod
	}
	d := timePeriodDto(tp)
	return &d, nil
}

// ConvertTimePeriods 批量转换，保持原有顺序；切片元素不会为 nil
func ConvertTimePeriods(periods []model.TimePeriod) []TimePeriodDto {
	result := make([]TimePeriodDto, 0, len(periods))
	for i := range periods {
		result = append(result, timePeriodDto(&periods[i]))
	}
	return result
}

func timePeriodDto(tp *model.TimePeriod) TimePeriodDto {
	return TimePeriodDto{
		ID:        tp.TimePeriodID,
		StartDate: tp.StartDate,
		EndDate:   tp.EndDate,
	}
}

// ConvertToDto 按实体类型分派：*Schedule / *Employee / *Visitor / *TimePeriod
// 失败时返回的 DTO 为 nil 接口
func ConvertToDto(entity any) (any, error) {
	switch e := entity.(type) {
	case *model.Schedule:
		return asAny(ConvertSchedule(e))
	case *model.Employee:
		return asAny(ConvertEmployee(e))
	case *model.Visitor:
		return asAny(ConvertVisitor(e))
	case *model.TimePeriod:
		return asAny(ConvertTimePeriod(e))
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEntity, entity)
	}
}

func asAny[T any](v *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
