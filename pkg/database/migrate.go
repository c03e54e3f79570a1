package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsTable = "museum_schema_migrations"

// migrateLogger 把 golang-migrate 的过程日志转到 zap
type migrateLogger struct{ l *zap.SugaredLogger }

func (m migrateLogger) Printf(format string, v ...interface{}) {
	m.l.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (m migrateLogger) Verbose() bool { return false }

// RunMigrations 应用内嵌的全部未执行迁移，返回当前版本号
// dirty 状态需要人工修复，这里直接报错而不是强制覆盖版本
func RunMigrations(db *sql.DB, logger *zap.Logger) (uint, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return 0, fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("初始化迁移实例失败: %w", err)
	}
	m.Log = migrateLogger{l: logger.Named("migrate").Sugar()}

	if version, dirty, err := m.Version(); err == nil && dirty {
		return version, fmt.Errorf("迁移版本 %d 处于 dirty 状态，需人工处理", version)
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debug("数据库结构已是最新")
	case err != nil:
		return 0, fmt.Errorf("执行迁移失败: %w", err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("读取迁移版本失败: %w", err)
	}
	return version, nil
}
