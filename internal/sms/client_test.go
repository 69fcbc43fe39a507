package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-api/internal/httperr"
)

func TestSend_ValidatesBeforeNetwork(t *testing.T) {
	// No server behind this URL; validation must fail first.
	c := NewClient("http://127.0.0.1:1", "token")
	ctx := context.Background()

	_, err := c.Send(ctx, Message{To: "0115550100", Body: "hi"})
	require.True(t, httperr.IsBusiness(err, "invalid_phone_number"), "local numbers must be normalized by the caller")

	_, err = c.Send(ctx, Message{To: "+27115550100", Body: ""})
	require.True(t, httperr.IsBusiness(err, "invalid_message_body"))

	_, err = c.Send(ctx, Message{To: "+27115550100", Body: strings.Repeat("x", MaxBodyLen+1)})
	require.True(t, httperr.IsBusiness(err, "invalid_message_body"))
}

func TestSend_Success(t *testing.T) {
	var got sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message_id":"msg_123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")

	id, err := c.Send(context.Background(), Message{To: "+27115550100", Body: "Your booking is confirmed."})
	require.NoError(t, err)
	require.Equal(t, "msg_123", id)
	require.Equal(t, "+27115550100", got.To)
}

func TestSend_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("provider down"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")

	_, err := c.Send(context.Background(), Message{To: "+27115550100", Body: "hello"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}
