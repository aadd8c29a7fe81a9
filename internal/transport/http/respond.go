// Package http содержит HTTP-транспорт back office поверх gin.
package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// timeLayout — формат отметок времени в ответах API.
const timeLayout = "2006-01-02 15:04:05"

// header — служебная часть конверта ответа.
type header struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// envelope — единый конверт всех ответов API.
type envelope struct {
	Header     header `json:"header"`
	Pagination any    `json:"pagination,omitempty"`
	Data       any    `json:"data"`
}

// ordersPagination — метаданные списка заказов.
type ordersPagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalOrders int64 `json:"total_orders"`
}

// productsPagination — метаданные списка товаров.
type productsPagination struct {
	CurrentPage   int   `json:"current_page"`
	PerPage       int   `json:"per_page"`
	TotalProducts int64 `json:"total_products"`
}

// respond отправляет данные в конверте с заданным статусом и сообщением.
func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{
		Header: header{Status: status, Message: message},
		Data:   data,
	})
}

// respondPage отправляет страницу списка с метаданными пагинации.
func respondPage(c *gin.Context, status int, message string, page any, data any) {
	c.JSON(status, envelope{
		Header:     header{Status: status, Message: message},
		Pagination: page,
		Data:       data,
	})
}

// respondError сопоставляет доменную ошибку с HTTP-статусом.
// Ошибки валидации и "не найдено" уходят клиенту со своим текстом;
// всё остальное скрывается за общим сообщением и попадает в лог.
func respondError(c *gin.Context, logger *log.Entry, err error) {
	switch {
	case domain.IsValidation(err):
		respond(c, http.StatusBadRequest, errMessage(err), nil)
	case domain.IsNotFound(err):
		respond(c, http.StatusNotFound, errMessage(err), nil)
	default:
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("внутренняя ошибка запроса")
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// errMessage убирает служебный префикс маркера класса ошибки.
func errMessage(err error) string {
	msg := err.Error()
	for _, prefix := range []string{"validation error: ", "not found: "} {
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}
