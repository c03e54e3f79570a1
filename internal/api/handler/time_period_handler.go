package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"museum-backend/internal/dto"
	"museum-backend/internal/service"
	apperrors "museum-backend/pkg/errors"
	"museum-backend/pkg/response"
)

// TimePeriodHandler 时间段模块 HTTP 处理器
type TimePeriodHandler struct {
	timePeriodSvc service.TimePeriodService
}

// NewTimePeriodHandler 创建 TimePeriodHandler
func NewTimePeriodHandler(timePeriodSvc service.TimePeriodService) *TimePeriodHandler {
	return &TimePeriodHandler{timePeriodSvc: timePeriodSvc}
}

// GetTimePeriod 时间段详情
// GET /api/v1/time-periods/:id
func (h *TimePeriodHandler) GetTimePeriod(c *gin.Context) {
	tp, err := h.timePeriodSvc.GetTimePeriod(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTimePeriodError(c, err)
		return
	}
	if tp == nil {
		response.NotFound(c, 12001, "时间段不存在")
		return
	}

	result, err := dto.ConvertTimePeriod(tp)
	if err != nil {
		h.handleTimePeriodError(c, err)
		return
	}
	response.OK(c, result)
}

// CreateTimePeriod 创建时间段
// POST /api/v1/time-periods
func (h *TimePeriodHandler) CreateTimePeriod(c *gin.Context) {
	var req dto.TimePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	tp, err := h.timePeriodSvc.CreateTimePeriod(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		h.handleTimePeriodError(c, err)
		return
	}

	result, err := dto.ConvertTimePeriod(tp)
	if err != nil {
		h.handleTimePeriodError(c, err)
		return
	}
	response.Created(c, result)
}

// EditTimePeriod 修改时间段
// PUT /api/v1/time-periods/:id
func (h *TimePeriodHandler) EditTimePeriod(c *gin.Context) {
	var req dto.TimePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	tp, err := h.timePeriodSvc.EditTimePeriod(c.Request.Context(), c.Param("id"), req.StartDate, req.EndDate)
	if err != nil {
		h.handleTimePeriodError(c, err)
		return
	}

	result, err := dto.ConvertTimePeriod(tp)
	if err != nil {
		h.handleTimePeriodError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteTimePeriod 删除时间段
// DELETE /api/v1/time-periods/:id
func (h *TimePeriodHandler) DeleteTimePeriod(c *gin.Context) {
	if err := h.timePeriodSvc.DeleteTimePeriod(c.Request.Context(), c.Param("id")); err != nil {
		h.handleTimePeriodError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *TimePeriodHandler) handleTimePeriodError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.InvalidArgument(c, err)
	default:
		response.InternalError(c)
	}
}
