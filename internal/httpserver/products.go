package httpserver

import (
	"net/http"

	"fundraiser-store/internal/domain"
	"github.com/gin-gonic/gin"
)

type selectionRequest struct {
	Sizes      map[string]int `json:"sizes"`
	JerseyName string         `json:"jerseyName"`
}

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.Products.List(c.Request.Context())
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"results": products, "count": len(products)})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Products.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// selectProduct adds the selector's sizes to the session cart.
func (h *handlers) selectProduct(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid selection body")
		return
	}
	h.addSelection(c, c.Param("productId"), req)
}

func (h *handlers) addSelection(c *gin.Context, productID string, req selectionRequest) {
	ctx := c.Request.Context()
	line, err := h.deps.Products.Select(ctx, productID, req.Sizes, req.JerseyName)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	cart, err := h.deps.Carts.AddLine(ctx, sessionID(c), line)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}
