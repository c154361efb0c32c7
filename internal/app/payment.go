package app

import (
	"context"
	"strings"

	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/inbound"
	"itemtrace-registry-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// FeeNGN is the fixed registry fee in naira
	FeeNGN = 100

	// feeMinorUnits is the fee in kobo, the unit the gateway charges in
	feeMinorUnits = FeeNGN * 100

	paymentCurrency = "NGN"

	referenceSuffixLength = 12
)

// PaymentService implements the fixed-fee payment verification protocol.
// The charge amount is always computed server-side.
type PaymentService struct {
	gateway     outbound.PaymentGateway
	callbackURL string
	logger      zerolog.Logger
}
type PaymentServiceParams struct {
	Gateway     outbound.PaymentGateway
	CallbackURL string
	Logger      zerolog.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(params PaymentServiceParams) *PaymentService {
	return &PaymentService{
		gateway:     params.Gateway,
		callbackURL: params.CallbackURL,
		logger:      params.Logger.With().Str("component", "payment_service").Logger(),
	}
}

// InitiatePayment starts a fixed-fee transaction for the user
func (service *PaymentService) InitiatePayment(ctx context.Context, userID uuid.UUID, email string) (*inbound.PaymentInitiation, error) {
	if !service.gateway.Configured() {
		service.logger.Error().Msg("Payment gateway secret key not configured")
		return nil, shared.ErrGatewayNotConfigured
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, shared.ErrEmailRequired
	}

	reference := newReference(userID)

	service.logger.Info().
		Str("user_id", userID.String()).
		Str("reference", reference).
		Int("amount", feeMinorUnits).
		Msg("Initializing payment")

	authorization, err := service.gateway.Initialize(ctx, outbound.TransactionRequest{
		Email:       email,
		AmountMinor: feeMinorUnits,
		Currency:    paymentCurrency,
		Reference:   reference,
		CallbackURL: service.callbackURL,
	})
	if err != nil {
		return nil, err
	}

	if authorization.Reference == "" {
		authorization.Reference = reference
	}

	return &inbound.PaymentInitiation{
		AuthorizationURL: authorization.AuthorizationURL,
		AccessCode:       authorization.AccessCode,
		Reference:        authorization.Reference,
		Amount:           feeMinorUnits,
	}, nil
}

// VerifyPayment checks a transaction by reference against the gateway. A
// settled amount below the fixed fee is not verified even when the
// gateway reports success.
func (service *PaymentService) VerifyPayment(ctx context.Context, userID uuid.UUID, reference string) (*inbound.PaymentVerification, error) {
	if !service.gateway.Configured() {
		service.logger.Error().Msg("Payment gateway secret key not configured")
		return nil, shared.ErrGatewayNotConfigured
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, shared.ErrReferenceRequired
	}

	service.logger.Info().
		Str("user_id", userID.String()).
		Str("reference", reference).
		Msg("Verifying payment")

	status, err := service.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	statusValue := strings.ToLower(status.Status)
	verified := statusValue == "success" && status.AmountMinor >= feeMinorUnits

	return &inbound.PaymentVerification{
		Verified:        verified,
		Status:          statusValue,
		Amount:          status.AmountMinor,
		Reference:       reference,
		GatewayResponse: status.GatewayResponse,
		PaidAt:          status.PaidAt,
		Channel:         status.Channel,
	}, nil
}

// newReference builds a globally unique transaction reference of the form
// {userID}-{random suffix}
func newReference(userID uuid.UUID) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:referenceSuffixLength]
	return userID.String() + "-" + suffix
}
