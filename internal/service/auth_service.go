package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"museum-backend/internal/dto"
	"museum-backend/internal/repository"
	"museum-backend/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUnknownRole        = errors.New("未知的用户角色")
)

// dummyPasswordHash 邮箱不存在时也做一次 bcrypt 比对，使响应耗时与密码错误一致
var dummyPasswordHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("museum-unknown-account"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// TokenBlacklist Token 黑名单存储（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	// Me 返回当前登录用户：馆员为 *dto.EmployeeDto，访客为 *dto.MuseumUserDto
	Me(ctx context.Context, userID, role string) (any, error)
}

type authService struct {
	repo        *repository.Repository
	employeeSvc EmployeeService
	visitorSvc  VisitorService
	jwtMgr      *jwt.Manager
	blacklist   TokenBlacklist
	logger      *zap.Logger
	// comparePassword 默认 bcrypt.CompareHashAndPassword
	comparePassword func(hash, password []byte) error
}

// NewAuthService 创建 AuthService 实例；blacklist 可为 nil（Redis 不可用时登出仅由客户端丢弃 Token）
func NewAuthService(
	repo *repository.Repository,
	employeeSvc EmployeeService,
	visitorSvc VisitorService,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:        repo,
		employeeSvc: employeeSvc,
		visitorSvc:  visitorSvc,
		jwtMgr:      jwtMgr,
		blacklist:   blacklist,
		logger:      logger,

		comparePassword: bcrypt.CompareHashAndPassword,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	userID, hash, role, err := s.lookupAccount(ctx, email)
	if errors.Is(err, ErrInvalidCredentials) {
		_ = s.comparePassword(dummyPasswordHash(), []byte(req.Password))
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err := s.comparePassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateAccessToken(userID, email, role)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户登录", zap.String("user_id", userID), zap.String("role", role))

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Role:        role,
		UserID:      userID,
	}, nil
}

// lookupAccount 先查馆员，再查访客
func (s *authService) lookupAccount(ctx context.Context, email string) (id, hash, role string, err error) {
	employee, err := s.repo.Employee.GetByEmail(ctx, email)
	if err == nil {
		return employee.MuseumUserID, employee.Password, jwt.RoleEmployee, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询馆员失败", zap.Error(err))
		return "", "", "", err
	}

	visitor, err := s.repo.Visitor.GetByEmail(ctx, email)
	if err == nil {
		return visitor.MuseumUserID, visitor.Password, jwt.RoleVisitor, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询访客失败", zap.Error(err))
		return "", "", "", err
	}

	return "", "", "", ErrInvalidCredentials
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil {
		s.logger.Warn("Token 黑名单不可用，跳过登出拉黑", zap.String("jti", jti))
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID, role string) (any, error) {
	switch role {
	case jwt.RoleEmployee:
		employee, err := s.employeeSvc.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return dto.ConvertEmployee(employee)
	case jwt.RoleVisitor:
		visitor, err := s.visitorSvc.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return dto.ConvertVisitor(visitor)
	default:
		return nil, ErrUnknownRole
	}
}
