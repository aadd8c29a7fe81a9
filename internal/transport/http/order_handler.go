package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/service/order"
)

// OrderHandler обслуживает ресурс /orders.
type OrderHandler struct {
	orders *order.Service
	logger *log.Entry
}

// NewOrderHandler конструирует обработчик заказов.
func NewOrderHandler(orders *order.Service, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.WithField("component", "order-handler")
	}
	return &OrderHandler{orders: orders, logger: logger}
}

// itemPayload — позиция заказа из тела запроса. Цена опциональна:
// без неё берётся каталожная цена на момент записи.
type itemPayload struct {
	ProductID int64            `json:"product_id"`
	Quantity  int32            `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
}

type createOrderPayload struct {
	CustomerID int64          `json:"customer_id"`
	Items      *[]itemPayload `json:"items"`
}

type updateOrderPayload struct {
	Status *string        `json:"status"`
	Items  *[]itemPayload `json:"items"`
}

// orderItemJSON — позиция в ответе API.
type orderItemJSON struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int32   `json:"quantity"`
	ProductPrice float64 `json:"product_price"`
	TotalPrice   string  `json:"total_price"`
}

// createdOrderJSON — тело ответа на создание заказа.
type createdOrderJSON struct {
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"customer_id"`
	Status     string          `json:"status"`
	OrderPrice float64         `json:"order_price"`
	Items      []orderItemJSON `json:"items"`
}

// orderJSON — заголовок заказа в ответах на чтение и обновление.
type orderJSON struct {
	OrderID    int64   `json:"order_id"`
	CustomerID int64   `json:"customer_id"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// orderViewJSON — заказ вместе с позициями.
type orderViewJSON struct {
	Order orderJSON       `json:"order"`
	Items []orderItemJSON `json:"items"`
}

// orderListEntryJSON — строка постраничного списка заказов.
type orderListEntryJSON struct {
	OrderID    int64  `json:"order_id"`
	CustomerID int64  `json:"customer_id"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// Create обрабатывает POST /orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var payload createOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	in := order.CreateInput{CustomerID: payload.CustomerID}
	if payload.Items != nil {
		in.Items = toItemInputs(*payload.Items)
	}

	view, err := h.orders.Create(in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Order created successfully", createdOrderJSON{
		OrderID:    view.Order.ID,
		CustomerID: view.Order.CustomerID,
		Status:     string(view.Order.Status),
		OrderPrice: view.TotalPrice.InexactFloat64(),
		Items:      toItemJSON(view.Items),
	})
}

// Show обрабатывает GET /orders/:id.
func (h *OrderHandler) Show(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	view, err := h.orders.Get(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Order found", toViewJSON(view))
}

// Update обрабатывает PUT /orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var payload updateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	in := order.UpdateInput{Status: payload.Status}
	if payload.Items != nil {
		in.Items = toItemInputs(*payload.Items)
	}

	view, err := h.orders.Update(id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Order updated successfully", toViewJSON(view))
}

// Delete обрабатывает DELETE /orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.orders.Delete(id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Order deleted successfully", gin.H{"order_id": id})
}

// List обрабатывает GET /orders с фильтрами и пагинацией.
func (h *OrderHandler) List(c *gin.Context) {
	params := order.ListParams{
		PerPage: queryInt(c, "per_page"),
		Page:    queryInt(c, "page"),
		Filter: domain.OrderFilter{
			CustomerID: c.Query("customer_id"),
			Status:     c.Query("status"),
			CreatedAt:  c.Query("created_at"),
			UpdatedAt:  c.Query("updated_at"),
		},
	}

	page, err := h.orders.List(params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	entries := make([]orderListEntryJSON, 0, len(page.Orders))
	for _, o := range page.Orders {
		entries = append(entries, orderListEntryJSON{
			OrderID:    o.ID,
			CustomerID: o.CustomerID,
			Status:     string(o.Status),
			CreatedAt:  o.CreatedAt.Format(timeLayout),
			UpdatedAt:  o.UpdatedAt.Format(timeLayout),
		})
	}

	respondPage(c, http.StatusOK, "Orders retrieved successfully", ordersPagination{
		CurrentPage: page.CurrentPage,
		PerPage:     page.PerPage,
		TotalOrders: page.TotalOrders,
	}, entries)
}

// orderID разбирает параметр пути :id; при мусоре отвечает 400 сам.
func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond(c, http.StatusBadRequest, "Invalid order id", nil)
		return 0, false
	}
	return id, true
}

// queryInt возвращает числовой параметр запроса; мусор и пропуск дают 0,
// дальше сервис подставит значение по умолчанию.
func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

func toItemInputs(payload []itemPayload) []order.ItemInput {
	items := make([]order.ItemInput, 0, len(payload))
	for _, entry := range payload {
		items = append(items, order.ItemInput{
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
			Price:     entry.Price,
		})
	}
	return items
}

func toItemJSON(items []order.ItemView) []orderItemJSON {
	out := make([]orderItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, orderItemJSON{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			ProductPrice: item.ProductPrice.InexactFloat64(),
			TotalPrice:   item.TotalPrice.StringFixed(2),
		})
	}
	return out
}

func toViewJSON(view order.View) orderViewJSON {
	return orderViewJSON{
		Order: orderJSON{
			OrderID:    view.Order.ID,
			CustomerID: view.Order.CustomerID,
			Status:     string(view.Order.Status),
			TotalPrice: view.TotalPrice.InexactFloat64(),
			CreatedAt:  view.Order.CreatedAt.Format(timeLayout),
			UpdatedAt:  view.Order.UpdatedAt.Format(timeLayout),
		},
		Items: toItemJSON(view.Items),
	}
}
