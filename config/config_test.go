package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth: AuthConfig{
			JWTSecret:      "museum-secret-key-2026",
			AccessTokenTTL: time.Hour,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("过短的 jwt_secret 应校验失败")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("非法端口应校验失败")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9090\nauth:\n  jwt_secret: file-secret-key-123456\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Setenv("MUSEUM_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 Port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("期望环境变量覆盖 Log.Level=debug，实际=%s", cfg.Log.Level)
	}
	if cfg.Auth.AccessTokenTTL != 2*time.Hour {
		t.Errorf("期望默认 AccessTokenTTL=2h，实际=%v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Database.Name != "museum" {
		t.Errorf("期望默认 db.name=museum，实际=%s", cfg.Database.Name)
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("空配置应校验失败")
	}
	for _, key := range []string{"jwt_secret", "access_token_ttl", "server.port"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("错误信息应包含 %s，实际: %v", key, err)
		}
	}
}
