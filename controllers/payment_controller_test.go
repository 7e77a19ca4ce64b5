package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/payment"
)

type stubFetcher struct {
	orders map[string]*models.Order
	err    error
}

func (s stubFetcher) FetchOrder(ctx context.Context, id string) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, payment.ErrOrderNotFound
	}
	return order, nil
}

func newPaymentRouter(fetcher payment.OrderFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pc := NewPaymentController(fetcher, payment.BankConfig{
		BankCode:      "MB",
		AccountNumber: "0000418530364",
		AccountName:   "SHOPSPHERE STORE",
		Template:      "compact2",
	}, 3*time.Second)

	router := gin.New()
	router.GET("/v1/checkout/payment/:id", pc.GetPaymentInstructions)
	router.GET("/v1/checkout/payment/:id/status", pc.CheckPaymentStatus)
	router.GET("/v1/checkout/success", pc.PaymentSuccess)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func dataField(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object")
	return data
}

func TestCheckPaymentStatusUnpaid(t *testing.T) {
	router := newPaymentRouter(stubFetcher{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", Total: 150000, PaymentStatus: models.PaymentStatusUnpaid},
	}})

	code, body := doRequest(t, router, "/v1/checkout/payment/order-1/status")
	require.Equal(t, http.StatusOK, code)

	data := dataField(t, body)
	assert.Equal(t, "unpaid", data["payment_status"])
	assert.NotContains(t, data, "redirect_url")
}

func TestCheckPaymentStatusPaidRedirects(t *testing.T) {
	router := newPaymentRouter(stubFetcher{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", Total: 150000, PaymentStatus: models.PaymentStatusPaid},
	}})

	code, body := doRequest(t, router, "/v1/checkout/payment/order-1/status")
	require.Equal(t, http.StatusOK, code)

	data := dataField(t, body)
	assert.Equal(t, "paid", data["payment_status"])
	assert.Equal(t, "/checkout/success?id=order-1", data["redirect_url"])
}

func TestCheckPaymentStatusNotFound(t *testing.T) {
	router := newPaymentRouter(stubFetcher{orders: map[string]*models.Order{}})

	code, _ := doRequest(t, router, "/v1/checkout/payment/missing/status")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCheckPaymentStatusBackendErrorReadsAsUnpaid(t *testing.T) {
	router := newPaymentRouter(stubFetcher{err: errors.New("connection reset")})

	code, body := doRequest(t, router, "/v1/checkout/payment/order-1/status")
	require.Equal(t, http.StatusOK, code)

	data := dataField(t, body)
	assert.Equal(t, "unpaid", data["payment_status"])
}

func TestGetPaymentInstructions(t *testing.T) {
	deadline := time.Now().Add(15 * time.Minute)
	router := newPaymentRouter(stubFetcher{orders: map[string]*models.Order{
		"order-1": {
			ID:              "order-1",
			Total:           149999.6,
			PaymentStatus:   models.PaymentStatusUnpaid,
			PaymentDeadline: &deadline,
		},
	}})

	code, body := doRequest(t, router, "/v1/checkout/payment/order-1")
	require.Equal(t, http.StatusOK, code)

	data := dataField(t, body)
	assert.Equal(t, "order-1", data["transfer_memo"])
	assert.Equal(t, float64(150000), data["amount"])
	assert.Equal(t, payment.QRImageURL(payment.BankConfig{
		BankCode:      "MB",
		AccountNumber: "0000418530364",
		AccountName:   "SHOPSPHERE STORE",
		Template:      "compact2",
	}, "order-1", 149999.6), data["qr_image_url"])
	assert.Equal(t, float64(3000), data["poll_interval_ms"])
	assert.Contains(t, data, "time_remaining")
}

func TestGetPaymentInstructionsAlreadyPaid(t *testing.T) {
	router := newPaymentRouter(stubFetcher{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", Total: 150000, PaymentStatus: models.PaymentStatusPaid},
	}})

	code, body := doRequest(t, router, "/v1/checkout/payment/order-1")
	require.Equal(t, http.StatusOK, code)

	data := dataField(t, body)
	assert.Equal(t, "/checkout/success?id=order-1", data["redirect_url"])
	assert.NotContains(t, data, "qr_image_url")
}

func TestPaymentSuccessRequiresPaidOrder(t *testing.T) {
	router := newPaymentRouter(stubFetcher{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", Total: 150000, PaymentStatus: models.PaymentStatusUnpaid},
	}})

	code, _ := doRequest(t, router, "/v1/checkout/success?id=order-1")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPaymentSuccess(t *testing.T) {
	router := newPaymentRouter(stubFetcher{orders: map[string]*models.Order{
		"order-1": {
			ID:            "order-1",
			Total:         150000,
			PaymentStatus: models.PaymentStatusPaid,
			Status:        models.OrderStatusPaid,
		},
	}})

	code, body := doRequest(t, router, "/v1/checkout/success?id=order-1")
	require.Equal(t, http.StatusOK, code)

	data := dataField(t, body)
	assert.Equal(t, "order-1", data["order_id"])
	assert.Equal(t, models.OrderStatusPaid, data["status"])
}
