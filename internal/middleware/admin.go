package middleware

import (
	"net/http"
	"strings"

	"greensnap/internal/db"
	"greensnap/internal/models"
	"greensnap/internal/services"

	"github.com/gin-gonic/gin"
)

// GrantKey context 中管理授权记录的键
const GrantKey = "admin_grant"

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.GetHeader("X-Admin-Token")
}

// GrantRequired 校验持久化的管理授权记录
// 令牌哈希后查 admin_grants 表并检查角色声明，
// 不做任何邮箱/ID 字符串比对
func GrantRequired(minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		var grant models.AdminGrant
		if err := db.DB.Where("token_hash = ?", services.HashToken(token)).
			First(&grant).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}

		if minRole == models.RoleAdmin && !grant.CanStrike() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}

		c.Set(GrantKey, &grant)
		c.Next()
	}
}

// LoadGrant 尝试加载授权记录但不强制：
// 普通提交接口用它来判断是否允许 public 隐私级别
func LoadGrant() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			var grant models.AdminGrant
			if err := db.DB.Where("token_hash = ?", services.HashToken(token)).
				First(&grant).Error; err == nil {
				c.Set(GrantKey, &grant)
			}
		}
		c.Next()
	}
}
