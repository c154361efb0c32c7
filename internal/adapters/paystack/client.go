package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.paystack.co"

// Client is the Paystack implementation of the payment gateway port
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     zerolog.Logger
}
type ClientParams struct {
	BaseURL   string
	SecretKey string
	Logger    zerolog.Logger
}

// NewClient creates a new Paystack client
func NewClient(params ClientParams) *Client {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:   baseURL,
		secretKey: params.SecretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: params.Logger.With().Str("component", "paystack_client").Logger(),
	}
}

// Configured reports whether the secret key is set
func (c *Client) Configured() bool {
	return c.secretKey != ""
}

// apiResponse is the envelope Paystack wraps every response in
type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status          string `json:"status"`
	Amount          int    `json:"amount"`
	GatewayResponse string `json:"gateway_response"`
	PaidAt          string `json:"paid_at"`
	Channel         string `json:"channel"`
}

// Initialize starts a transaction and returns the authorization handle
func (c *Client) Initialize(ctx context.Context, req outbound.TransactionRequest) (*outbound.TransactionAuthorization, error) {
	payload := map[string]any{
		"email":     req.Email,
		"amount":    req.AmountMinor,
		"currency":  req.Currency,
		"reference": req.Reference,
	}
	if req.CallbackURL != "" {
		payload["callback_url"] = req.CallbackURL
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode initialize payload: %w", err)
	}

	response, err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var data initializeData
	if err := json.Unmarshal(response.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode initialize response: %w", err)
	}

	return &outbound.TransactionAuthorization{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the settlement status of a transaction by reference
func (c *Client) Verify(ctx context.Context, reference string) (*outbound.TransactionStatus, error) {
	response, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var data verifyData
	if err := json.Unmarshal(response.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}

	return &outbound.TransactionStatus{
		Status:          data.Status,
		AmountMinor:     data.Amount,
		GatewayResponse: data.GatewayResponse,
		PaidAt:          data.PaidAt,
		Channel:         data.Channel,
	}, nil
}

// do runs one round-trip against the gateway and unwraps its envelope.
// A response with status=false becomes a GatewayError.
func (c *Client) do(ctx context.Context, method, path string, body *bytes.Reader) (*apiResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = body
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}

	request.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Gateway request failed")
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer response.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if !envelope.Status {
		c.logger.Warn().Str("path", path).Str("message", envelope.Message).Msg("Gateway declined request")
		message := envelope.Message
		if message == "" {
			message = "payment gateway request declined"
		}
		return nil, &shared.GatewayError{Message: message}
	}

	return &envelope, nil
}
