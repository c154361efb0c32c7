package httpapi

import (
	"net/http"

	"itemtrace-registry-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PaymentHandler serves the fixed-fee payment endpoints
type PaymentHandler struct {
	payments inbound.PaymentService
	logger   zerolog.Logger
}
type PaymentHandlerParams struct {
	Payments inbound.PaymentService
	Logger   zerolog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		payments: params.Payments,
		logger:   params.Logger.With().Str("component", "payment_handler").Logger(),
	}
}

// Initiate starts a fixed-fee transaction for the caller
func (handler *PaymentHandler) Initiate(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		body.Email = ""
	}

	initiation, err := handler.payments.InitiatePayment(c.Request.Context(), userID, body.Email)
	if err != nil {
		respondServiceError(c, err, "Failed to initialize payment")
		return
	}

	respond(c, http.StatusOK, initiation, "Payment initialized")
}

// Verify checks a transaction by reference against the gateway
func (handler *PaymentHandler) Verify(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	verification, err := handler.payments.VerifyPayment(c.Request.Context(), userID, c.Query("reference"))
	if err != nil {
		respondServiceError(c, err, "Failed to verify payment")
		return
	}

	respond(c, http.StatusOK, verification, "Verification complete")
}
