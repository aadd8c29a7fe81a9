package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/service/product"
)

// ProductHandler обслуживает ресурс /products.
type ProductHandler struct {
	products *product.Service
	logger   *log.Entry
}

// NewProductHandler конструирует обработчик товаров.
func NewProductHandler(products *product.Service, logger *log.Entry) *ProductHandler {
	if logger == nil {
		logger = log.WithField("component", "product-handler")
	}
	return &ProductHandler{products: products, logger: logger}
}

type createProductPayload struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type updateProductPayload struct {
	Name  *string `json:"name"`
	Price *string `json:"price"`
}

type productJSON struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func toProductJSON(p domain.Product) productJSON {
	return productJSON{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		CreatedAt: p.CreatedAt.Format(timeLayout),
		UpdatedAt: p.UpdatedAt.Format(timeLayout),
	}
}

// List обрабатывает GET /products с фильтрами и пагинацией.
func (h *ProductHandler) List(c *gin.Context) {
	params := product.ListParams{
		PerPage: queryInt(c, "per_page"),
		Page:    queryInt(c, "page"),
		Filter: domain.ProductFilter{
			Name:      c.Query("name"),
			Price:     c.Query("price"),
			CreatedAt: c.Query("created_at"),
			UpdatedAt: c.Query("updated_at"),
		},
	}

	page, err := h.products.List(params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]productJSON, 0, len(page.Products))
	for _, entry := range page.Products {
		out = append(out, toProductJSON(entry))
	}

	respondPage(c, http.StatusOK, "Products retrieved successfully", productsPagination{
		CurrentPage:   page.CurrentPage,
		PerPage:       page.PerPage,
		TotalProducts: page.TotalProducts,
	}, out)
}

// Show обрабатывает GET /products/:id.
func (h *ProductHandler) Show(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	found, err := h.products.Get(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Product found", toProductJSON(found))
}

// Create обрабатывает POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var payload createProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if payload.Name == "" {
		respond(c, http.StatusBadRequest, "Name is required", nil)
		return
	}

	created, err := h.products.Create(product.CreateInput{Name: payload.Name, Price: payload.Price})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Product created successfully", toProductJSON(created))
}

// Update обрабатывает PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var payload updateProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	updated, err := h.products.Update(id, product.UpdateInput{Name: payload.Name, Price: payload.Price})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Product updated successfully", toProductJSON(updated))
}

// Delete обрабатывает DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Product deleted successfully", gin.H{"product_id": id})
}

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond(c, http.StatusBadRequest, "Invalid product id", nil)
		return 0, false
	}
	return id, true
}
