package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/outbound"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientParams{
		BaseURL:   serverURL,
		SecretKey: "sk_test_secret",
		Logger:    zerolog.Nop(),
	})
}

func TestClientConfigured(t *testing.T) {
	assert.True(t, newTestClient("http://unused").Configured())
	assert.False(t, NewClient(ClientParams{Logger: zerolog.Nop()}).Configured())
}

func TestClientInitialize(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         "ref-1",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	authorization, err := client.Initialize(context.Background(), outbound.TransactionRequest{
		Email:       "user@example.com",
		AmountMinor: 10000,
		Currency:    "NGN",
		Reference:   "ref-1",
		CallbackURL: "https://example.com/callback",
	})
	require.NoError(t, err)

	assert.Equal(t, "/transaction/initialize", gotPath)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "user@example.com", gotPayload["email"])
	assert.Equal(t, float64(10000), gotPayload["amount"])
	assert.Equal(t, "NGN", gotPayload["currency"])
	assert.Equal(t, "ref-1", gotPayload["reference"])
	assert.Equal(t, "https://example.com/callback", gotPayload["callback_url"])

	assert.Equal(t, "https://checkout.paystack.com/abc123", authorization.AuthorizationURL)
	assert.Equal(t, "abc123", authorization.AccessCode)
	assert.Equal(t, "ref-1", authorization.Reference)
}

func TestClientInitializeOmitsEmptyCallback(t *testing.T) {
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]any{"status": true, "data": map[string]any{}})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Initialize(context.Background(), outbound.TransactionRequest{
		Email:       "user@example.com",
		AmountMinor: 10000,
		Currency:    "NGN",
		Reference:   "ref-1",
	})
	require.NoError(t, err)

	_, present := gotPayload["callback_url"]
	assert.False(t, present)
}

func TestClientInitializeDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "Invalid key"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Initialize(context.Background(), outbound.TransactionRequest{
		Email:       "user@example.com",
		AmountMinor: 10000,
		Currency:    "NGN",
		Reference:   "ref-1",
	})

	var gatewayErr *shared.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "Invalid key", gatewayErr.Message)
}

func TestClientVerify(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":           "success",
				"amount":           10000,
				"gateway_response": "Approved",
				"paid_at":          "2026-08-01T10:00:00.000Z",
				"channel":          "card",
			},
		})
	}))
	defer server.Close()

	status, err := newTestClient(server.URL).Verify(context.Background(), "ref-1")
	require.NoError(t, err)

	assert.Equal(t, "/transaction/verify/ref-1", gotPath)
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, 10000, status.AmountMinor)
	assert.Equal(t, "Approved", status.GatewayResponse)
	assert.Equal(t, "2026-08-01T10:00:00.000Z", status.PaidAt)
	assert.Equal(t, "card", status.Channel)
}

func TestClientVerifyDeclinedWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": false})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Verify(context.Background(), "ref-1")

	var gatewayErr *shared.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "payment gateway request declined", gatewayErr.Message)
}
