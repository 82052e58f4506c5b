package backmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaymentStatus_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/pay_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pay_1","status":"approved","external_reference":"booking_42","amount":100,"currency":"ARS"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, zerolog.Nop())
	ps, err := c.GetPaymentStatus(context.Background(), "pay_1")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, ps.Status)
	assert.Equal(t, "booking_42", ps.ExternalReference)
	assert.Equal(t, 100.0, ps.Amount)
}

func TestGetPaymentStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, zerolog.Nop())
	_, err := c.GetPaymentStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestGetPaymentStatus_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, zerolog.Nop())
	_, err := c.GetPaymentStatus(context.Background(), "pay_1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetPaymentStatus_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, zerolog.Nop())
	_, err := c.GetPaymentStatus(context.Background(), "pay_1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
