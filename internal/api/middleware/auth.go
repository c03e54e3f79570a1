package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"museum-backend/pkg/jwt"
	"museum-backend/pkg/response"
)

// TokenBlacklistChecker 查询 Token 是否已登出（Redis 实现见 pkg/redis）
type TokenBlacklistChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// 认证中间件写入 gin.Context 的键，handler 通过 context_helper 读取
const (
	ctxKeyUserID   = "user_id"
	ctxKeyRole     = "role"
	ctxKeyTokenJTI = "token_jti"
	ctxKeyTokenExp = "token_exp"
)

func abortUnauthorized(c *gin.Context, msg string) {
	response.Unauthorized(c, response.CodeUnauthorized, msg)
	c.Abort()
}

// bearerToken 取出 Authorization: Bearer <token> 中的 token，scheme 不区分大小写
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// JWTAuth 校验 Access Token 并把身份写入上下文
// blacklist 为 nil 时不查黑名单；查询出错时放行，Redis 故障不影响登录态
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenBlacklistChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "缺少认证头")
			return
		}
		raw, ok := bearerToken(header)
		if !ok {
			abortUnauthorized(c, "认证头格式无效")
			return
		}

		claims, err := jwtMgr.ParseToken(raw)
		if err != nil {
			abortUnauthorized(c, "Token 无效或已过期")
			return
		}
		if blacklist != nil {
			if revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
				abortUnauthorized(c, "Token 已失效")
				return
			}
		}

		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyRole, claims.Role)
		c.Set(ctxKeyTokenJTI, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ctxKeyTokenExp, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// RoleAuth 要求当前用户角色属于 allowedRoles 之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ctxKeyRole)
		if role == "" {
			abortUnauthorized(c, "未认证")
			return
		}
		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, response.CodeForbidden, "无权限访问")
			c.Abort()
			return
		}
		c.Next()
	}
}
