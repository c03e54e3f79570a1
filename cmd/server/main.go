package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"museum-backend/config"
	"museum-backend/internal/api/handler"
	"museum-backend/internal/api/middleware"
	"museum-backend/internal/api/router"
	"museum-backend/internal/repository"
	"museum-backend/internal/service"
	"museum-backend/pkg/database"
	"museum-backend/pkg/jwt"
	applogger "museum-backend/pkg/logger"
	"museum-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("服务异常退出", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("服务器已关闭")
}

// run 装配依赖并阻塞到 ctx 取消或 HTTP 服务出错
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("应用启动中", zap.Int("port", cfg.Server.Port), zap.String("log_level", cfg.Log.Level))

	db, closeDB, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	cache := connectRedis(cfg, logger)
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Error("关闭 Redis 连接失败", zap.Error(err))
			}
		}()
	}

	// Redis 不可用时三个接口变量保持 nil 接口，下游据此跳过黑名单与限流
	var (
		blacklist service.TokenBlacklist
		checker   middleware.TokenBlacklistChecker
		limiter   middleware.RateLimiter
	)
	if cache != nil {
		blacklist, checker, limiter = cache, cache, cache
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(repository.NewRepository(db), jwtMgr, blacklist, logger)
	engine := router.Setup(cfg, handler.NewHandler(svc), router.Deps{
		JWT:       jwtMgr,
		Blacklist: checker,
		Limiter:   limiter,
		DB:        db,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP 服务器异常: %w", err)
	case <-ctx.Done():
		logger.Info("收到关闭信号，开始优雅关闭")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务器关闭异常: %w", err)
	}
	return nil
}

// openDatabase 连接 PostgreSQL 并执行迁移，返回的 close 函数负责释放连接池
func openDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("关闭数据库连接失败", zap.Error(err))
		}
	}

	version, err := database.RunMigrations(sqlDB, logger)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	logger.Info("数据库迁移完成", zap.Uint("version", version))

	return db, closeDB, nil
}

// connectRedis 连接失败时返回 nil，服务降级运行
func connectRedis(cfg *config.Config, logger *zap.Logger) *redis.Client {
	c, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 不可用，Token 黑名单与限流功能关闭", zap.Error(err))
		return nil
	}
	return c
}
