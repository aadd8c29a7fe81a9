// Package middleware содержит промежуточные обработчики HTTP-транспорта.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/backoffice/internal/service/auth"
)

// SubjectKey — ключ контекста gin, под которым хранится субъект токена.
const SubjectKey = "auth_subject"

// RequireAuth проверяет bearer-токен и прерывает запрос с 401,
// если токен отсутствует, подделан или истёк.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Token missing or invalid")
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		subject, err := tokens.Validate(raw)
		if err != nil {
			abortUnauthorized(c, "Token invalid or expired")
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"header": gin.H{"status": http.StatusUnauthorized, "message": message},
		"data":   nil,
	})
}
