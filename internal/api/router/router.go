package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"museum-backend/config"
	"museum-backend/internal/api/handler"
	"museum-backend/internal/api/middleware"
	"museum-backend/pkg/jwt"
)

// Deps 路由依赖的基础设施；Redis 不可用时 Blacklist / Limiter 为 nil
type Deps struct {
	JWT       *jwt.Manager
	Blacklist middleware.TokenBlacklistChecker
	Limiter   middleware.RateLimiter
	DB        *gorm.DB
	Logger    *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", healthCheck(deps.DB))

	employeeOnly := middleware.RoleAuth(jwt.RoleEmployee)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开接口
		v1.POST("/auth/login",
			middleware.RateLimit(deps.Limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow),
			h.Auth.Login)
		v1.POST("/visitors",
			middleware.RateLimit(deps.Limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow),
			h.Visitor.Register)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(deps.JWT, deps.Blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 访客模块（访客仅可访问本人，Handler 层鉴权）
			visitors := authorized.Group("/visitors")
			{
				visitors.GET("", employeeOnly, h.Visitor.ListVisitors)
				visitors.GET("/:id", h.Visitor.GetVisitor)
				visitors.PUT("/:id", h.Visitor.UpdateVisitor)
				visitors.DELETE("/:id", h.Visitor.DeleteVisitor)
			}

			// 馆员模块
			employees := authorized.Group("/employees", employeeOnly)
			{
				employees.GET("", h.Employee.ListEmployees)
				employees.POST("", h.Employee.CreateEmployee)
				employees.GET("/:id", h.Employee.GetEmployee)
				employees.PUT("/:id", h.Employee.UpdateEmployee)
				employees.DELETE("/:id", h.Employee.DeleteEmployee)
				employees.PUT("/:id/schedule", h.Employee.AssignSchedule)
			}

			// 时间段模块
			timePeriods := authorized.Group("/time-periods")
			{
				timePeriods.GET("/:id", h.TimePeriod.GetTimePeriod)
				timePeriods.POST("", employeeOnly, h.TimePeriod.CreateTimePeriod)
				timePeriods.PUT("/:id", employeeOnly, h.TimePeriod.EditTimePeriod)
				timePeriods.DELETE("/:id", employeeOnly, h.TimePeriod.DeleteTimePeriod)
			}

			// 排班表模块
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("/:id", h.Schedule.GetSchedule)
				schedules.GET("/:id/time-periods", h.Schedule.ListTimePeriods)
				schedules.GET("/:id/export.xlsx", h.Export.ExportExcel)
				schedules.GET("/:id/export.ics", h.Export.ExportICS)
				schedules.POST("", employeeOnly, h.Schedule.CreateSchedule)
				schedules.DELETE("/:id", employeeOnly, h.Schedule.DeleteSchedule)
				schedules.POST("/:id/time-periods/:tpid", employeeOnly, h.Schedule.AddTimePeriod)
				schedules.DELETE("/:id/time-periods/:tpid", employeeOnly, h.Schedule.RemoveTimePeriod)
			}
		}
	}

	return r
}

// healthCheck 检查数据库连通性；db 为 nil 时仅返回进程存活
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
