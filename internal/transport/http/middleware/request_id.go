package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader — заголовок сквозного идентификатора запроса.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey — ключ контекста gin с идентификатором запроса.
const RequestIDKey = "request_id"

// RequestID принимает идентификатор запроса от клиента или генерирует
// новый и возвращает его в заголовке ответа.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
