package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeTransaction_SplitFields(t *testing.T) {
	var got initializeRequest
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{
			"authorization_url":"https://checkout.paystack.com/abc123",
			"access_code":"abc123",
			"reference":"REF001"
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_xyz")

	auth, err := c.InitializeTransaction(context.Background(), InitializeInput{
		Email:          "customer@glow.test",
		AmountCents:    30000,
		Currency:       "ZAR",
		Reference:      "REF001",
		SubaccountCode: "ACCT_8f4s1eq7ml6rlzj",
	})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.paystack.com/abc123", auth.AuthorizationURL)
	require.Equal(t, "REF001", auth.Reference)

	require.Equal(t, "Bearer sk_test_xyz", authHeader)
	require.Equal(t, int64(30000), got.Amount)
	require.Equal(t, "ACCT_8f4s1eq7ml6rlzj", got.Subaccount)
	require.Equal(t, "subaccount", got.Bearer)
	// 15% of 30000 cents goes to the platform.
	require.Equal(t, int64(4500), got.TransactionCharge)
}

func TestInitializeTransaction_NoSubaccountMeansNoSplit(t *testing.T) {
	var got initializeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"status":true,"message":"ok","data":{"authorization_url":"u","access_code":"a","reference":"r"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_xyz")

	_, err := c.InitializeTransaction(context.Background(), InitializeInput{
		Email:       "customer@glow.test",
		AmountCents: 10000,
		Currency:    "ZAR",
		Reference:   "REF002",
	})
	require.NoError(t, err)
	require.Empty(t, got.Subaccount)
	require.Empty(t, got.Bearer)
	require.Zero(t, got.TransactionCharge)
}

func TestVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/REF001", r.URL.Path)
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"status":"success","reference":"REF001","amount":30000,"currency":"ZAR","paid_at":"2026-03-10T14:00:00Z"
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_xyz")

	tx, err := c.VerifyTransaction(context.Background(), "REF001")
	require.NoError(t, err)
	require.Equal(t, "success", tx.Status)
	require.Equal(t, int64(30000), tx.AmountCents)
	require.Equal(t, "ZAR", tx.Currency)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_bad")

	_, err := c.VerifyTransaction(context.Background(), "REF001")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid key")
}
