package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"museum-backend/internal/dto"
	"museum-backend/internal/service"
	apperrors "museum-backend/pkg/errors"
	"museum-backend/pkg/response"
)

// EmployeeHandler 馆员模块 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// CreateEmployee 创建馆员
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateMuseumUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	employee, err := h.employeeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	result, err := dto.ConvertEmployee(employee)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.Created(c, result)
}

// GetEmployee 馆员详情
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	employee, err := h.employeeSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	result, err := dto.ConvertEmployee(employee)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, result)
}

// ListEmployees 馆员列表
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	employees, total, err := h.employeeSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	list := make([]*dto.EmployeeDto, 0, len(employees))
	for i := range employees {
		item, err := dto.ConvertEmployee(&employees[i])
		if err != nil {
			h.handleEmployeeError(c, err)
			return
		}
		list = append(list, item)
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// UpdateEmployee 更新馆员姓名或密码
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req dto.UpdateMuseumUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	employee, err := h.employeeSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	result, err := dto.ConvertEmployee(employee)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteEmployee 删除馆员
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employeeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, nil)
}

// AssignSchedule 为馆员指定排班表
// PUT /api/v1/employees/:id/schedule
func (h *EmployeeHandler) AssignSchedule(c *gin.Context) {
	var req dto.AssignScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	employee, err := h.employeeSvc.AssignSchedule(c.Request.Context(), c.Param("id"), req.ScheduleID)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	result, err := dto.ConvertEmployee(employee)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14001, "馆员不存在")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 14002, "邮箱已被注册")
	case errors.Is(err, service.ErrScheduleInUse):
		response.Conflict(c, 14003, "排班表已被其他馆员占用")
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.InvalidArgument(c, err)
	default:
		response.InternalError(c)
	}
}
