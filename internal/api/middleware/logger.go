package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 访问日志中间件；健康检查只在失败时记录
func Logger(logger *zap.Logger) gin.HandlerFunc {
	access := logger.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if c.FullPath() == "/health" && status < 400 {
			return
		}

		level, msg := accessLevel(status)
		ce := access.Check(level, msg)
		if ce == nil {
			return
		}

		fields := make([]zap.Field, 0, 10)
		fields = append(fields,
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Int("size", c.Writer.Size()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
		if uid := c.GetString(ctxKeyUserID); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.Strings("errors", errs.Errors()))
		}
		ce.Write(fields...)
	}
}

func accessLevel(status int) (zapcore.Level, string) {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel, "请求处理失败"
	case status >= 400:
		return zapcore.WarnLevel, "客户端错误"
	default:
		return zapcore.InfoLevel, "请求完成"
	}
}
