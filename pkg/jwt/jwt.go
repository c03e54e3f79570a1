package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"museum-backend/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

// 角色：馆员与访客
const (
	RoleEmployee = "employee"
	RoleVisitor  = "visitor"
)

// Claims 自定义 JWT 声明
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"` // "employee" | "visitor"
	jwtv5.RegisteredClaims
}

// Manager 签发与校验 HS256 Access Token
type Manager struct {
	secret         []byte
	issuer         string
	accessTokenTTL time.Duration
	parser         *jwtv5.Parser
}

// NewManager 创建 JWT 管理器，issuer 缺省为 museum-backend
func NewManager(cfg *config.AuthConfig) *Manager {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "museum-backend"
	}
	return &Manager{
		secret:         []byte(cfg.JWTSecret),
		issuer:         issuer,
		accessTokenTTL: cfg.AccessTokenTTL,
		parser: jwtv5.NewParser(
			jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
			jwtv5.WithIssuer(issuer),
			jwtv5.WithExpirationRequired(),
			jwtv5.WithLeeway(5*time.Second),
		),
	}
}

// AccessTokenTTL 返回 Access Token 有效期
func (m *Manager) AccessTokenTTL() time.Duration { return m.accessTokenTTL }

// GenerateAccessToken 为馆员或访客签发 Access Token，jti 随机生成供登出拉黑
func (m *Manager) GenerateAccessToken(userID, email, role string) (string, error) {
	now := time.Now()
	return jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.accessTokenTTL)),
		},
	}).SignedString(m.secret)
}

// ParseToken 校验签名、签发者与有效期，并要求角色为已知角色
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	claims := new(Claims)
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwtv5.Token) (interface{}, error) {
		return m.secret, nil
	})
	switch {
	case errors.Is(err, jwtv5.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, ErrTokenInvalid
	}

	if claims.Role != RoleEmployee && claims.Role != RoleVisitor {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
