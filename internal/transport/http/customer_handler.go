package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/service/customer"
)

// CustomerHandler обслуживает ресурс /customers.
type CustomerHandler struct {
	customers *customer.Service
	logger    *log.Entry
}

// NewCustomerHandler конструирует обработчик клиентов.
func NewCustomerHandler(customers *customer.Service, logger *log.Entry) *CustomerHandler {
	if logger == nil {
		logger = log.WithField("component", "customer-handler")
	}
	return &CustomerHandler{customers: customers, logger: logger}
}

type createCustomerPayload struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

type updateCustomerPayload struct {
	Name *string `json:"name"`
	CPF  *string `json:"cpf"`
}

type customerJSON struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	CPF        string `json:"cpf"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toCustomerJSON(c domain.Customer) customerJSON {
	return customerJSON{
		CustomerID: c.ID,
		Name:       c.Name,
		CPF:        c.CPF,
		CreatedAt:  c.CreatedAt.Format(timeLayout),
		UpdatedAt:  c.UpdatedAt.Format(timeLayout),
	}
}

// List обрабатывает GET /customers.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.List()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]customerJSON, 0, len(customers))
	for _, entry := range customers {
		out = append(out, toCustomerJSON(entry))
	}
	respond(c, http.StatusOK, "Customers retrieved successfully", out)
}

// Show обрабатывает GET /customers/:id.
func (h *CustomerHandler) Show(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	found, err := h.customers.Get(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Customer found", toCustomerJSON(found))
}

// Create обрабатывает POST /customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var payload createCustomerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if payload.Name == "" {
		respond(c, http.StatusBadRequest, "Name is required", nil)
		return
	}

	created, err := h.customers.Create(customer.CreateInput{Name: payload.Name, CPF: payload.CPF})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Customer created successfully", toCustomerJSON(created))
}

// Update обрабатывает PUT /customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	var payload updateCustomerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	updated, err := h.customers.Update(id, customer.UpdateInput{Name: payload.Name, CPF: payload.CPF})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Customer updated successfully", toCustomerJSON(updated))
}

// Delete обрабатывает DELETE /customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	deleted, err := h.customers.Delete(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Customer deleted successfully", gin.H{
		"customer_id": deleted.ID,
		"name":        deleted.Name,
	})
}

func customerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond(c, http.StatusBadRequest, "Invalid customer id", nil)
		return 0, false
	}
	return id, true
}
