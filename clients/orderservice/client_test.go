package orderservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/payment"
)

func TestFetchOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/order-42", r.URL.Path)
		json.NewEncoder(w).Encode(models.Order{
			ID:            "order-42",
			Total:         150000,
			PaymentStatus: models.PaymentStatusPaid,
			Status:        models.OrderStatusPaid,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	order, err := client.FetchOrder(context.Background(), "order-42")
	require.NoError(t, err)
	assert.Equal(t, "order-42", order.ID)
	assert.True(t, order.IsPaid())
}

func TestFetchOrderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, payment.ErrOrderNotFound)
}

func TestFetchOrderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchOrder(context.Background(), "order-42")
	require.Error(t, err)
	assert.NotErrorIs(t, err, payment.ErrOrderNotFound)
}
