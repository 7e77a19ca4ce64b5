package controllers

import (
	"crypto/subtle"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khanhtran-03/shopsphere/config"
	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/utils"
)

// reconcileAmount verifies the transferred amount covers the order total.
// Amounts are compared in whole currency units; bank transfers carry no
// decimals.
func reconcileAmount(order *models.Order, amount float64) error {
	if math.Round(amount) < math.Round(order.Total) {
		return fmt.Errorf("transfer of %.0f does not cover order total %.0f", math.Round(amount), math.Round(order.Total))
	}
	return nil
}

// memoOrderID extracts the order id from an incoming transfer description.
// The payment page embeds the id verbatim as the memo, so a trim is all the
// normalization banks have needed so far.
func memoOrderID(content string) string {
	return strings.TrimSpace(content)
}

// POST /payment/webhook/bank-transfer
//
// Called by the bank reconciliation process when an incoming transfer is
// matched. This is the sole writer of payment_status; the payment watcher
// and the status endpoint only ever observe it.
func BankTransferWebhook(c *gin.Context) {
	utils.LogInfo("BankTransferWebhook called")

	secret := os.Getenv("WEBHOOK_SECRET")
	if secret == "" || subtle.ConstantTimeCompare([]byte(c.GetHeader("X-Webhook-Secret")), []byte(secret)) != 1 {
		utils.LogError("Webhook called with bad or missing secret")
		utils.Unauthorized(c, "Invalid webhook secret")
		return
	}

	var req struct {
		Content   string  `json:"content" binding:"required"`
		Amount    float64 `json:"amount" binding:"required"`
		Reference string  `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid webhook payload: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	orderID := memoOrderID(req.Content)
	var order models.Order
	if err := config.DB.Where("id = ?", orderID).First(&order).Error; err != nil {
		utils.LogError("Webhook transfer memo %q matched no order", req.Content)
		utils.NotFound(c, "No order matches the transfer memo")
		return
	}

	if order.IsPaid() {
		utils.LogInfo("Webhook for already-paid order %s (ref %s)", order.ID, req.Reference)
		utils.Success(c, "Order already marked paid", nil)
		return
	}

	if err := reconcileAmount(&order, req.Amount); err != nil {
		utils.LogError("Webhook amount mismatch for order %s: %v", order.ID, err)
		utils.BadRequest(c, "Transfer amount does not match order", err.Error())
		return
	}

	if err := config.DB.Model(&order).Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
		utils.LogError("Failed to mark order %s paid: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}
	utils.LogInfo("Order %s marked paid via bank transfer (ref %s)", order.ID, req.Reference)

	utils.Success(c, "Payment recorded", gin.H{"order_id": order.ID})
}
