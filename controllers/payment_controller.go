package controllers

import (
	"errors"
	"math"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/payment"
	"github.com/khanhtran-03/shopsphere/utils"
)

// PaymentController serves the bank transfer payment flow: instructions with
// the QR payload, the status endpoint the payment page polls, a countdown
// stream, and the success view. The order source is injected so the flow
// works against either the local database or an external order service.
type PaymentController struct {
	Orders payment.OrderFetcher
	Bank   payment.BankConfig
	// PollInterval is advertised to clients as the suggested wait
	// between status checks.
	PollInterval time.Duration
}

func NewPaymentController(orders payment.OrderFetcher, bank payment.BankConfig, pollInterval time.Duration) *PaymentController {
	if pollInterval <= 0 {
		pollInterval = payment.DefaultPollInterval
	}
	return &PaymentController{Orders: orders, Bank: bank, PollInterval: pollInterval}
}

func successURL(orderID string) string {
	return "/checkout/success?id=" + url.QueryEscape(orderID)
}

// GET /checkout/payment/:id
func (pc *PaymentController) GetPaymentInstructions(c *gin.Context) {
	orderID := c.Param("id")
	utils.LogInfo("GetPaymentInstructions called for order %s", orderID)

	order, err := pc.Orders.FetchOrder(c.Request.Context(), orderID)
	if errors.Is(err, payment.ErrOrderNotFound) {
		utils.LogError("Order not found: %s", orderID)
		utils.NotFound(c, "Order not found")
		return
	}
	if err != nil {
		utils.LogError("Failed to fetch order %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to load order", nil)
		return
	}

	if order.IsPaid() {
		utils.Success(c, "Order already paid", gin.H{
			"payment_status": order.PaymentStatus,
			"redirect_url":   successURL(order.ID),
		})
		return
	}

	resp := gin.H{
		"order_id":      order.ID,
		"amount":        math.Round(order.Total),
		"qr_image_url":  payment.QRImageURL(pc.Bank, order.ID, order.Total),
		"transfer_memo": order.ID,
		"bank": gin.H{
			"code":           pc.Bank.BankCode,
			"account_number": pc.Bank.AccountNumber,
			"account_name":   pc.Bank.AccountName,
		},
		"payment_status":   order.PaymentStatus,
		"status_url":       "/v1/checkout/payment/" + order.ID + "/status",
		"poll_interval_ms": pc.PollInterval.Milliseconds(),
		"orders_url":       "/v1/orders",
	}
	if order.PaymentDeadline != nil {
		resp["payment_deadline"] = order.PaymentDeadline
		resp["time_remaining"] = payment.FormatRemaining(*order.PaymentDeadline, time.Now())
	}

	utils.Success(c, "Payment instructions retrieved", resp)
}

// GET /checkout/payment/:id/status
//
// The endpoint the payment page polls. A backend error during a poll is
// reported as not-yet-paid rather than an error: from the payer's point of
// view the two are indistinguishable, and the next tick retries anyway.
func (pc *PaymentController) CheckPaymentStatus(c *gin.Context) {
	orderID := c.Param("id")

	order, err := pc.Orders.FetchOrder(c.Request.Context(), orderID)
	if errors.Is(err, payment.ErrOrderNotFound) {
		utils.NotFound(c, "Order not found")
		return
	}
	if err != nil {
		utils.LogDebug("Status check failed for order %s: %v", orderID, err)
		utils.Success(c, "Payment status retrieved", gin.H{
			"payment_status": models.PaymentStatusUnpaid,
		})
		return
	}

	if order.IsPaid() {
		utils.Success(c, "Payment received", gin.H{
			"payment_status": order.PaymentStatus,
			"redirect_url":   successURL(order.ID),
		})
		return
	}

	resp := gin.H{"payment_status": order.PaymentStatus}
	if order.PaymentDeadline != nil {
		resp["time_remaining"] = payment.FormatRemaining(*order.PaymentDeadline, time.Now())
	}
	utils.Success(c, "Payment status retrieved", resp)
}

// GET /checkout/payment/:id/countdown
//
// Streams the remaining payment time once per second as server-sent events
// until the client disconnects. Orders without a deadline get 204.
func (pc *PaymentController) StreamCountdown(c *gin.Context) {
	orderID := c.Param("id")

	order, err := pc.Orders.FetchOrder(c.Request.Context(), orderID)
	if errors.Is(err, payment.ErrOrderNotFound) {
		utils.NotFound(c, "Order not found")
		return
	}
	if err != nil {
		utils.LogError("Failed to fetch order %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to load order", nil)
		return
	}

	if order.PaymentDeadline == nil {
		c.Status(204)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	cd := payment.NewCountdown(order.PaymentDeadline)
	cd.Run(c.Request.Context(), func(remaining string) {
		c.SSEvent("countdown", remaining)
		c.Writer.Flush()
	})
}

// GET /checkout/success
func (pc *PaymentController) PaymentSuccess(c *gin.Context) {
	orderID := c.Query("id")
	if orderID == "" {
		utils.BadRequest(c, "Order id is required", nil)
		return
	}

	order, err := pc.Orders.FetchOrder(c.Request.Context(), orderID)
	if errors.Is(err, payment.ErrOrderNotFound) {
		utils.NotFound(c, "Order not found")
		return
	}
	if err != nil {
		utils.LogError("Failed to fetch order %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to load order", nil)
		return
	}

	if !order.IsPaid() {
		utils.BadRequest(c, "Order has not been paid", gin.H{
			"payment_url": "/v1/checkout/payment/" + order.ID,
		})
		return
	}

	utils.Success(c, "Thank you for your payment! Your order has been placed.", gin.H{
		"order_id":       order.ID,
		"total":          order.Total,
		"payment_method": order.PaymentMethod,
		"status":         order.Status,
		"items":          len(order.OrderItems),
		"orders_url":     "/v1/orders",
	})
}
