package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/metrics"
	"github.com/yotayard/yotayard/internal/transport/http/middleware"
	"github.com/yotayard/yotayard/internal/usecase"
)

// Stripe caps event payloads well below this; anything larger is not a
// webhook we sent for.
const maxWebhookBody = 64 << 10

type paymentUsecaser interface {
	CreateSellerFeeCheckout(ctx context.Context, listingID, sellerID string) (string, error)
	CreateBuyerFeeCheckout(ctx context.Context, listingID, buyerID string) (string, error)
	HandleCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error
}

type PaymentHandler struct {
	uc            paymentUsecaser
	webhookSecret string
	logger        *slog.Logger
}

func NewPaymentHandler(uc paymentUsecaser, webhookSecret string, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:            uc,
		webhookSecret: webhookSecret,
		logger:        logger.With("component", "payment_handler"),
	}
}

// POST /listings/:id/checkout/seller-fee (authenticated)
func (h *PaymentHandler) SellerFeeCheckout(c *gin.Context) {
	url, err := h.uc.CreateSellerFeeCheckout(c.Request.Context(), c.Param("id"), c.GetString(middleware.SellerIDKey))
	if err != nil {
		h.checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}

// POST /listings/:id/checkout/buyer-fee (authenticated)
func (h *PaymentHandler) BuyerFeeCheckout(c *gin.Context) {
	url, err := h.uc.CreateBuyerFeeCheckout(c.Request.Context(), c.Param("id"), c.GetString(middleware.SellerIDKey))
	if err != nil {
		h.checkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}

func (h *PaymentHandler) checkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errListingNotFound})
	case errors.Is(err, usecase.ErrNotListingOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": errNotOwner})
	default:
		h.logger.Error("create checkout session", "listing_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

// POST /stripe/webhook
// Signature-verified Stripe events. Only checkout.session.completed is
// handled; everything else is acknowledged so Stripe stops retrying.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "bad_signature").Inc()
		h.logger.Warn("webhook signature verification failed", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	if event.Type != "checkout.session.completed" {
		metrics.WebhookEventsTotal.WithLabelValues(string(event.Type), "ignored").Inc()
		c.Status(http.StatusOK)
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(string(event.Type), "bad_payload").Inc()
		h.logger.Error("unmarshal checkout session", "event_id", event.ID, "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.uc.HandleCheckoutCompleted(c.Request.Context(), &sess); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(string(event.Type), "error").Inc()
		h.logger.Error("handle checkout completed", "event_id", event.ID, "error", err)
		// Non-2xx makes Stripe retry the event.
		c.Status(http.StatusInternalServerError)
		return
	}

	metrics.WebhookEventsTotal.WithLabelValues(string(event.Type), "ok").Inc()
	c.Status(http.StatusOK)
}
