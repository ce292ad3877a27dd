package mailer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, sendStatus string) (*httptest.Server, *[]SendRequest) {
	t.Helper()
	var sent []SendRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := LoginResponse{Status: "success", Token: "test-token", Expiration: 3600}
		if req.Password != "secret" {
			resp = LoginResponse{Status: "error", Comment: "bad credentials", ErrCode: "AUTH"}
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/mail", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req SendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		sent = append(sent, req)

		json.NewEncoder(w).Encode(SendResponse{Status: sendStatus, Comment: "queued"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &sent
}

func TestHTTPGatewaySend(t *testing.T) {
	server, sent := newTestServer(t, "success")

	gateway := NewHTTPGateway(HTTPConfig{
		APIURL:   server.URL,
		Username: "lodge",
		Password: "secret",
		Sender:   "bookings@laddalodge.co.za",
	})

	id, err := gateway.Send(Message{
		To:      "thandi@example.com",
		Subject: "Booking confirmed",
		Body:    "See you soon",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	require.Len(t, *sent, 1)
	assert.Equal(t, "bookings@laddalodge.co.za", (*sent)[0].From)
	assert.Equal(t, "thandi@example.com", (*sent)[0].To)

	// token is cached; a second send must not log in again
	_, err = gateway.Send(Message{To: "thandi@example.com", Subject: "x", Body: "y"})
	require.NoError(t, err)
	assert.Len(t, *sent, 2)
}

func TestHTTPGatewaySendFailure(t *testing.T) {
	server, _ := newTestServer(t, "error")

	gateway := NewHTTPGateway(HTTPConfig{
		APIURL:   server.URL,
		Username: "lodge",
		Password: "secret",
	})

	_, err := gateway.Send(Message{To: "thandi@example.com"})
	assert.Error(t, err)
}

func TestHTTPGatewayLoginFailure(t *testing.T) {
	server, _ := newTestServer(t, "success")

	gateway := NewHTTPGateway(HTTPConfig{
		APIURL:   server.URL,
		Username: "lodge",
		Password: "wrong",
	})

	_, err := gateway.Send(Message{To: "thandi@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token")
}

func TestNoopGateway(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	gateway := NewNoopGateway(logger)

	id, err := gateway.Send(Message{To: "anyone@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, "Noop Mail Gateway", gateway.GetName())
}
