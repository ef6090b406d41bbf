package httpserver

import (
	"errors"
	"net/http"

	"fundraiser-store/internal/checkout"
	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/payment"
	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
}

func (h *handlers) validateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid checkout body")
		return
	}
	missing := req.CustomerInfo.Missing()
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(missing) == 0, "missing": missing})
}

// createCheckoutOrder renders a new bridge over the current cart and
// customer snapshot, replacing any earlier one for the session.
func (h *handlers) createCheckoutOrder(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid checkout body")
		return
	}
	ctx := c.Request.Context()
	sid := sessionID(c)

	cart, err := h.deps.Carts.Load(ctx, sid)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	var bridge *checkout.Bridge
	if current, ok := h.deps.Bridges.Current(sid); ok {
		bridge = current.Rerender(cart, req.CustomerInfo)
	} else {
		bridge = checkout.NewBridge(sid, cart, req.CustomerInfo, h.deps.Payments, h.deps.Submitter)
	}

	// Only a rendered bridge is registered; a rejected render also retires
	// the session's previous one, whose snapshot is now stale.
	if err := bridge.Render(); err != nil {
		h.deps.Bridges.Drop(sid)
		if errors.Is(err, domain.ErrIncompleteCustomer) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
				"error":   err.Error(),
				"missing": req.CustomerInfo.Missing(),
			})
			return
		}
		h.respondDomainError(c, err)
		return
	}

	h.deps.Bridges.Attach(bridge)

	handle, err := bridge.CreateOrder(ctx)
	if err != nil {
		h.deps.Bridges.Release(bridge)
		if errors.Is(err, checkout.ErrDetached) {
			h.respondDomainError(c, err)
			return
		}
		h.logger.Printf("create payment order: %v", err)
		respondError(c, http.StatusBadGateway, "could not create payment order")
		return
	}
	h.deps.Bridges.Bind(handle.ID, bridge)

	snapshot := bridge.Cart()
	c.JSON(http.StatusCreated, gin.H{
		"id":          handle.ID,
		"amount":      snapshot.TotalPrice().StringFixed(2),
		"currency":    domain.CurrencyUSD,
		"description": bridge.Description(),
	})
}

func (h *handlers) captureCheckoutOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	bridge, ok := h.deps.Bridges.Lookup(orderID)
	if !ok || bridge.SessionID() != sessionID(c) {
		h.respondDomainError(c, checkout.ErrUnknownOrder)
		return
	}

	savedID, err := bridge.Approve(c.Request.Context(), payment.Handle{ID: orderID})
	if state := bridge.State(); state == checkout.Completed || state == checkout.Failed {
		h.deps.Bridges.Release(bridge)
	}
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orderId": savedID,
		"message": bridge.Message(),
	})
}
