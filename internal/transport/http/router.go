package http

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/service/auth"
	"github.com/vladislavdragonenkov/backoffice/internal/transport/http/middleware"
)

// RouterDeps — зависимости маршрутизатора.
type RouterDeps struct {
	Auth      *AuthHandler
	Customers *CustomerHandler
	Products  *ProductHandler
	Orders    *OrderHandler
	Tokens    *auth.TokenService
	Logger    *log.Entry
}

// NewRouter собирает gin-маршрутизатор: /login открыт, остальные ресурсы
// закрыты bearer-токеном.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = log.WithField("component", "http")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(deps.Logger),
		middleware.Metrics(),
	)

	router.POST("/login", deps.Auth.Login)

	authorized := router.Group("/", middleware.RequireAuth(deps.Tokens))

	customers := authorized.Group("/customers")
	customers.GET("", deps.Customers.List)
	customers.POST("", deps.Customers.Create)
	customers.GET("/:id", deps.Customers.Show)
	customers.PUT("/:id", deps.Customers.Update)
	customers.PATCH("/:id", deps.Customers.Update)
	customers.DELETE("/:id", deps.Customers.Delete)

	products := authorized.Group("/products")
	products.GET("", deps.Products.List)
	products.POST("", deps.Products.Create)
	products.GET("/:id", deps.Products.Show)
	products.PUT("/:id", deps.Products.Update)
	products.PATCH("/:id", deps.Products.Update)
	products.DELETE("/:id", deps.Products.Delete)

	orders := authorized.Group("/orders")
	orders.GET("", deps.Orders.List)
	orders.POST("", deps.Orders.Create)
	orders.GET("/:id", deps.Orders.Show)
	orders.PUT("/:id", deps.Orders.Update)
	orders.PATCH("/:id", deps.Orders.Update)
	orders.DELETE("/:id", deps.Orders.Delete)

	return router
}
