package outbound

import "context"

// TransactionRequest carries the server-computed charge for initialization
type TransactionRequest struct {
	Email       string
	AmountMinor int
	Currency    string
	Reference   string
	CallbackURL string
}

// TransactionAuthorization is the gateway's handle for a pending charge
type TransactionAuthorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// TransactionStatus is the gateway's view of a settled transaction
type TransactionStatus struct {
	Status          string
	AmountMinor     int
	GatewayResponse string
	PaidAt          string
	Channel         string
}

// PaymentGateway defines the interface to the external payment provider.
// A gateway-declined request surfaces as *shared.GatewayError.
type PaymentGateway interface {
	// Configured reports whether the server-side secret credential is set
	Configured() bool

	// Initialize starts a transaction and returns the authorization handle
	Initialize(ctx context.Context, req TransactionRequest) (*TransactionAuthorization, error)

	// Verify fetches the settlement status of a transaction by reference
	Verify(ctx context.Context, reference string) (*TransactionStatus, error)
}
