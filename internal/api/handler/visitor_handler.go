package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"museum-backend/internal/dto"
	"museum-backend/internal/service"
	apperrors "museum-backend/pkg/errors"
	"museum-backend/pkg/jwt"
	"museum-backend/pkg/response"
)

// VisitorHandler 访客模块 HTTP 处理器
type VisitorHandler struct {
	visitorSvc service.VisitorService
}

// NewVisitorHandler 创建 VisitorHandler
func NewVisitorHandler(visitorSvc service.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitorSvc: visitorSvc}
}

// Register 访客注册（公开）
// POST /api/v1/visitors
func (h *VisitorHandler) Register(c *gin.Context) {
	var req dto.CreateMuseumUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	visitor, err := h.visitorSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleVisitorError(c, err)
		return
	}

	result, err := dto.ConvertVisitor(visitor)
	if err != nil {
		h.handleVisitorError(c, err)
		return
	}
	response.Created(c, result)
}

// GetVisitor 访客详情（馆员或本人）
// GET /api/v1/visitors/:id
func (h *VisitorHandler) GetVisitor(c *gin.Context) {
	id := c.Param("id")
	if !h.canAccess(c, id) {
		return
	}

	visitor, err := h.visitorSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleVisitorError(c, err)
		return
	}

	result, err := dto.ConvertVisitor(visitor)
	if err != nil {
		h.handleVisitorError(c, err)
		return
	}
	response.OK(c, result)
}

// ListVisitors 访客列表（馆员）
// GET /api/v1/visitors
func (h *VisitorHandler) ListVisitors(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	visitors, total, err := h.visitorSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	list := make([]*dto.MuseumUserDto, 0, len(visitors))
	for i := range visitors {
		item, err := dto.ConvertVisitor(&visitors[i])
		if err != nil {
			h.handleVisitorError(c, err)
			return
		}
		list = append(list, item)
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// UpdateVisitor 更新访客（馆员或本人）
// PUT /api/v1/visitors/:id
func (h *VisitorHandler) UpdateVisitor(c *gin.Context) {
	id := c.Param("id")
	if !h.canAccess(c, id) {
		return
	}

	var req dto.UpdateMuseumUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "参数校验失败")
		return
	}

	visitor, err := h.visitorSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleVisitorError(c, err)
		return
	}

	result, err := dto.ConvertVisitor(visitor)
	if err != nil {
		h.handleVisitorError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteVisitor 删除访客（馆员或本人）
// DELETE /api/v1/visitors/:id
func (h *VisitorHandler) DeleteVisitor(c *gin.Context) {
	id := c.Param("id")
	if !h.canAccess(c, id) {
		return
	}

	if err := h.visitorSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleVisitorError(c, err)
		return
	}
	response.OK(c, nil)
}

// canAccess 馆员可操作任意访客，访客仅可操作本人
func (h *VisitorHandler) canAccess(c *gin.Context, visitorID string) bool {
	userID, ok := MustGetUserID(c)
	if !ok {
		return false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return false
	}
	if role == jwt.RoleEmployee || userID == visitorID {
		return true
	}
	response.Forbidden(c, response.CodeForbidden, "无权限访问")
	return false
}

func (h *VisitorHandler) handleVisitorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVisitorNotFound):
		response.NotFound(c, 15001, "访客不存在")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 15002, "邮箱已被注册")
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.InvalidArgument(c, err)
	default:
		response.InternalError(c)
	}
}
