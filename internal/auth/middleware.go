package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie 会话 cookie 名称
	SessionCookie = "session"

	userIdKey = "user_id"
)

// Session 解析会话令牌，不拦截匿名请求
func Session(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := tokenFromRequest(c); raw != "" {
			if userId, err := tokens.Parse(raw); err == nil {
				c.Set(userIdKey, userId)
			}
		}
		c.Next()
	}
}

// CurrentUserID 当前会话用户
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIdKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
