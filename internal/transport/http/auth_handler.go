package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/service/auth"
)

// AuthHandler выпускает токены доступа к API.
type AuthHandler struct {
	tokens   *auth.TokenService
	username string
	password string
	logger   *log.Entry
}

// NewAuthHandler конструирует обработчик входа с парой учётных данных
// из конфигурации.
func NewAuthHandler(tokens *auth.TokenService, username, password string, logger *log.Entry) *AuthHandler {
	if logger == nil {
		logger = log.WithField("component", "auth-handler")
	}
	return &AuthHandler{tokens: tokens, username: username, password: password, logger: logger}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login обрабатывает POST /login: сверяет учётные данные и выпускает
// bearer-токен.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if !h.credentialsMatch(payload.Username, payload.Password) {
		respond(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.tokens.Issue(payload.Username)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

func (h *AuthHandler) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.password)) == 1
	return userOK && passOK
}
