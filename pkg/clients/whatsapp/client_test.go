package whatsapp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnold-CK/Anjo/internal/config"
	"github.com/Arnold-CK/Anjo/pkg/clients/whatsapp"
)

func newClient(url string) *whatsapp.APIClient {
	return whatsapp.NewClient(config.WhatsAppConfig{
		AccessToken:   "secret-token",
		PhoneNumberID: "1234",
		BaseURL:       url + "/",
		APIVersion:    "v20.0",
	})
}

func TestSendTextPostsMessage(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v20.0/1234/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.abc"}]}`))
	}))
	defer srv.Close()

	id, err := newClient(srv.URL).SendText(context.Background(), "256700000000", "hello")
	require.NoError(t, err)
	assert.Equal(t, "wamid.abc", id)

	assert.Equal(t, "whatsapp", got["messaging_product"])
	assert.Equal(t, "256700000000", got["to"])
	assert.Equal(t, "text", got["type"])
	assert.Equal(t, map[string]interface{}{"body": "hello", "preview_url": false}, got["text"])
}

func TestSendTextReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Recipient not in allowed list","type":"OAuthException","code":131030,"fbtrace_id":"trace"}}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).SendText(context.Background(), "256700000000", "hello")
	require.Error(t, err)

	var apiErr *whatsapp.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, 131030, apiErr.Detail.Code)
	assert.Equal(t, "trace", apiErr.Detail.FBTraceID)
	assert.Contains(t, apiErr.Error(), "Recipient not in allowed list")
}

func TestSendTextWithoutMessageID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[]}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).SendText(context.Background(), "256700000000", "hello")
	assert.ErrorIs(t, err, whatsapp.ErrNoMessageID)
}

func TestAPIErrorFallsBackToStatus(t *testing.T) {
	err := &whatsapp.APIError{Status: http.StatusUnauthorized}
	assert.Equal(t, "whatsapp api error: code=401, message=", err.Error())
}
