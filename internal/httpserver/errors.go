package httpserver

import (
	"errors"
	"net/http"

	"fundraiser-store/internal/checkout"
	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/order"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondDomainError maps service errors to HTTP statuses. Unknown errors are
// logged and reported as 500 without detail.
func (h *handlers) respondDomainError(c *gin.Context, err error) {
	var oerr *order.OrderError
	switch {
	case errors.As(err, &oerr):
		status := http.StatusInternalServerError
		if oerr.Kind == order.CaptureFailed {
			status = http.StatusBadGateway
		}
		h.logger.Printf("order failure: %v", err)
		c.AbortWithStatusJSON(status, gin.H{
			"error":         oerr.Kind.String(),
			"message":       oerr.UserMessage(),
			"transactionId": oerr.TransactionID,
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, checkout.ErrUnknownOrder):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidSelection), errors.Is(err, domain.ErrInvalidQuantity):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrIncompleteCustomer):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, checkout.ErrDetached), errors.Is(err, checkout.ErrInvalidState):
		respondError(c, http.StatusConflict, err.Error())
	default:
		h.logger.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
