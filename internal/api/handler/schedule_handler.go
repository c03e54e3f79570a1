package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"museum-backend/internal/dto"
	"museum-backend/internal/service"
	apperrors "museum-backend/pkg/errors"
	"museum-backend/pkg/response"
)

// ScheduleHandler 排班表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// CreateSchedule 创建空排班表
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	schedule, err := h.scheduleSvc.Create(c.Request.Context())
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	result, _ := dto.ConvertSchedule(schedule)
	response.Created(c, result)
}

// GetSchedule 排班表详情
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	result, _ := dto.ConvertSchedule(schedule)
	response.OK(c, result)
}

// DeleteSchedule 删除排班表
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	if err := h.scheduleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListTimePeriods 排班表下的时间段
// GET /api/v1/schedules/:id/time-periods
func (h *ScheduleHandler) ListTimePeriods(c *gin.Context) {
	schedule, periods, err := h.scheduleSvc.ListTimePeriods(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, dto.ScheduleTimePeriodsResponse{
		Schedule:    dto.ScheduleDto{ID: schedule.ScheduleID},
		TimePeriods: dto.ConvertTimePeriods(periods),
	})
}

// AddTimePeriod 将时间段加入排班表
// POST /api/v1/schedules/:id/time-periods/:tpid
func (h *ScheduleHandler) AddTimePeriod(c *gin.Context) {
	if err := h.scheduleSvc.AddTimePeriod(c.Request.Context(), c.Param("id"), c.Param("tpid")); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, nil)
}

// RemoveTimePeriod 将时间段移出排班表
// DELETE /api/v1/schedules/:id/time-periods/:tpid
func (h *ScheduleHandler) RemoveTimePeriod(c *gin.Context) {
	if err := h.scheduleSvc.RemoveTimePeriod(c.Request.Context(), c.Param("id"), c.Param("tpid")); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13001, "排班表不存在")
	case errors.Is(err, service.ErrTimePeriodAlreadyInSchedule):
		response.Conflict(c, 13002, "该时间段已在排班表中")
	case errors.Is(err, service.ErrScheduleInUse):
		response.Conflict(c, 13003, "排班表已被馆员占用")
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.InvalidArgument(c, err)
	default:
		response.InternalError(c)
	}
}
