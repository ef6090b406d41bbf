package httpserver

import (
	"errors"
	"net/http"

	"fundraiser-store/internal/mailer"
	"github.com/gin-gonic/gin"
)

func (h *handlers) sendConfirmation(c *gin.Context) {
	var req mailer.ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid confirmation body")
		return
	}
	res, err := h.deps.Mailer.SendConfirmation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, mailer.ErrNoRecipient) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Printf("failed to send email for order %s: %v", req.OrderID, err)
		respondError(c, http.StatusInternalServerError, "Failed to send email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}
