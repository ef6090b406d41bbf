package httpserver

import (
	"net/http"

	"fundraiser-store/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type cartResponse struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	items := cart.Lines
	if items == nil {
		items = []domain.CartLine{}
	}
	return cartResponse{
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice().Round(2),
	}
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.Carts.Load(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// addCartLine accepts a line in the stored shape. Name, price and image come
// from the catalog, not from the request.
func (h *handlers) addCartLine(c *gin.Context) {
	var line domain.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		respondError(c, http.StatusBadRequest, "invalid cart line")
		return
	}
	if line.ProductID == "" {
		respondError(c, http.StatusBadRequest, "productId is required")
		return
	}
	sizes := make(map[string]int, len(line.Sizes))
	for _, sq := range line.Sizes {
		if sq.Quantity < 0 {
			h.respondDomainError(c, domain.ErrInvalidQuantity)
			return
		}
		sizes[sq.Size] += sq.Quantity
	}
	h.addSelection(c, line.ProductID, selectionRequest{Sizes: sizes, JerseyName: line.JerseyName})
}

func (h *handlers) removeCartLine(c *gin.Context) {
	cart, err := h.deps.Carts.RemoveLine(c.Request.Context(), sessionID(c), c.Param("productId"), c.Query("jerseyName"))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.deps.Carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
