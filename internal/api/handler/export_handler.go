package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"museum-backend/internal/service"
	"museum-backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// exportFunc 生成导出文件内容与文件名
type exportFunc func(ctx context.Context, scheduleID string) (*bytes.Buffer, string, error)

// ExportExcel 导出排班表为 Excel
// GET /api/v1/schedules/:id/export.xlsx
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	h.export(c, h.exportSvc.ExportScheduleExcel, contentTypeXLSX)
}

// ExportICS 导出排班表为 iCalendar
// GET /api/v1/schedules/:id/export.ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	h.export(c, h.exportSvc.ExportScheduleICS, contentTypeICS)
}

func (h *ExportHandler) export(c *gin.Context, gen exportFunc, contentType string) {
	buf, filename, err := gen(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 16001, "排班表不存在")
		return
	case err != nil:
		// ErrExportGenerateFail 及其他错误
		response.InternalError(c)
		return
	}

	// filename 兼容旧客户端，filename* 携带 UTF-8 原名
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		filename, url.PathEscape(filename)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
