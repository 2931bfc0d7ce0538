package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/yotayard/yotayard/internal/transport/http/handler"
	"github.com/yotayard/yotayard/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	vinHandler *handler.VINHandler,
	listingHandler *handler.ListingHandler,
	verifyHandler *handler.VerifyHandler,
	paymentHandler *handler.PaymentHandler,
	hmacKey []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(hmacKey)

	// Seller sign-in
	r.POST("/auth/magic-link", authHandler.RequestMagicLink)
	r.GET("/auth/verify", authHandler.Verify)

	// VIN decoding for the listing wizard
	r.GET("/vin/:vin", vinHandler.Decode)

	// Public browse
	r.GET("/listings", listingHandler.Search)
	r.GET("/listings/:id", listingHandler.GetByID)

	// Listing verification (link arrives by email, no session required)
	r.POST("/verify/:id", verifyHandler.Redeem)

	// Authenticated seller/buyer routes
	r.POST("/listings", authMW, listingHandler.Create)
	r.GET("/listings/:id/contact", authMW, listingHandler.GetContact)
	r.POST("/listings/:id/checkout/seller-fee", authMW, paymentHandler.SellerFeeCheckout)
	r.POST("/listings/:id/checkout/buyer-fee", authMW, paymentHandler.BuyerFeeCheckout)

	// Stripe callbacks authenticate via signature, not session
	r.POST("/stripe/webhook", paymentHandler.Webhook)

	return r
}
