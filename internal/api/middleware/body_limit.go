package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"museum-backend/pkg/response"
)

// BodyLimit 请求体大小限制
// Content-Length 已知且超限时直接拒绝；未知长度由 MaxBytesReader 在读取时截断，绑定失败后返回 400
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
