package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionSecretKey context 中会话密钥的键
const SessionSecretKey = "session_secret"

// EnsureSessionSecret 给每个浏览器会话补发随机会话密钥
// 密钥只存在 cookie 会话里，服务端不存任何会话-身份映射；
// 请求体里显式带的 sessionSecret 优先于这里的值
func EnsureSessionSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		if existing, ok := session.Get(SessionSecretKey).(string); ok && existing != "" {
			c.Set(SessionSecretKey, existing)
			c.Next()
			return
		}

		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			// 发不出密钥就让这部分流量落到公共池，不中断请求
			log.Printf("failed to generate session secret: %v", err)
			c.Next()
			return
		}
		secret := hex.EncodeToString(buf)
		session.Set(SessionSecretKey, secret)
		if err := session.Save(); err != nil {
			log.Printf("failed to save session: %v", err)
		}
		c.Set(SessionSecretKey, secret)

		c.Next()
	}
}
