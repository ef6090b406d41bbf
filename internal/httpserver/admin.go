package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fundraiser-store/internal/domain"
	"github.com/gin-gonic/gin"
)

// adminMiddleware guards support endpoints with a static bearer token. An
// empty token disables them.
func adminMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			respondError(c, http.StatusForbidden, "admin endpoints disabled")
			return
		}
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			respondError(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Next()
	}
}

type pendingOrderResponse struct {
	ExternalOrderID string              `json:"externalOrderId"`
	SessionID       string              `json:"sessionId"`
	State           domain.PendingState `json:"state"`
	OrderID         string              `json:"orderId,omitempty"`
	LastError       string              `json:"lastError,omitempty"`
	Order           json.RawMessage     `json:"order,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func (h *handlers) listPendingOrders(c *gin.Context) {
	if h.deps.Pending == nil {
		respondError(c, http.StatusNotFound, "pending-order log not configured")
		return
	}
	entries, err := h.deps.Pending.ListUnresolved(c.Request.Context())
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	results := make([]pendingOrderResponse, 0, len(entries))
	for _, e := range entries {
		r := pendingOrderResponse{
			ExternalOrderID: e.ExternalOrderID,
			SessionID:       e.SessionID,
			State:           e.State,
			OrderID:         e.OrderID,
			LastError:       e.LastError,
			CreatedAt:       e.CreatedAt,
			UpdatedAt:       e.UpdatedAt,
		}
		if json.Valid(e.Payload) {
			r.Order = e.Payload
		}
		results = append(results, r)
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func (h *handlers) getOrder(c *gin.Context) {
	if h.deps.Orders == nil {
		respondError(c, http.StatusNotFound, "order store not configured")
		return
	}
	rec, err := h.deps.Orders.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
