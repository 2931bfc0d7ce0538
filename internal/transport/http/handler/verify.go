package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yotayard/yotayard/internal/domain"
)

type verificationRedeemer interface {
	Redeem(ctx context.Context, listingID, token string) error
}

type VerifyHandler struct {
	uc     verificationRedeemer
	logger *slog.Logger
}

func NewVerifyHandler(uc verificationRedeemer, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{uc: uc, logger: logger.With("component", "verify_handler")}
}

// POST /verify/:id?token=<raw>
// Redeems the emailed verification link and activates the listing. The
// three failure modes get distinct messages so the seller knows whether
// to retry or request a fresh link.
func (h *VerifyHandler) Redeem(c *gin.Context) {
	listingID := c.Param("id")
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errVerificationInvalid})
		return
	}

	err := h.uc.Redeem(c.Request.Context(), listingID, token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			c.JSON(http.StatusGone, gin.H{"error": errVerificationExpired})
		case errors.Is(err, domain.ErrTokenInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": errVerificationInvalid})
		case errors.Is(err, domain.ErrActivationFailed):
			h.logger.Error("activate listing", "listing_id", listingID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errActivationFailed})
		default:
			h.logger.Error("redeem verification", "listing_id", listingID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "active"})
}
