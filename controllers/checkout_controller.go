package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khanhtran-03/shopsphere/config"
	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/utils"
)

// Flat shipping fee until carrier rates are wired in.
const shippingFee = 30000

// GET /checkout
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var items []models.CartItem
	config.DB.Preload("Product").Where("user_id = ?", user.ID).Find(&items)

	var lines []gin.H
	var subtotal float64
	for _, item := range items {
		lineTotal := item.Product.Price * float64(item.Quantity)
		subtotal += lineTotal
		lines = append(lines, gin.H{
			"product_id": item.ProductID,
			"name":       item.Product.Name,
			"quantity":   item.Quantity,
			"price":      item.Product.Price,
			"total":      lineTotal,
		})
	}

	utils.Success(c, "Checkout summary retrieved successfully", gin.H{
		"can_checkout": len(lines) > 0,
		"items":        lines,
		"subtotal":     subtotal,
		"shipping_fee": shippingFee,
		"total":        subtotal + shippingFee,
	})
}

// POST /checkout
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod    string `json:"payment_method" binding:"required,oneof=cod bank_transfer"`
		ShippingName     string `json:"shipping_name" binding:"required"`
		ShippingPhone    string `json:"shipping_phone" binding:"required"`
		ShippingAddress  string `json:"shipping_address" binding:"required"`
		ShippingWard     string `json:"shipping_ward"`
		ShippingDistrict string `json:"shipping_district"`
		ShippingProvince string `json:"shipping_province"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid checkout request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var items []models.CartItem
	config.DB.Preload("Product").Where("user_id = ?", user.ID).Find(&items)
	if len(items) == 0 {
		utils.BadRequest(c, "Cart is empty", nil)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Failed to load config: %v", err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	order := models.Order{
		UserID:           user.ID,
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    models.PaymentStatusUnpaid,
		Status:           models.OrderStatusPending,
		ShippingName:     req.ShippingName,
		ShippingPhone:    req.ShippingPhone,
		ShippingAddress:  req.ShippingAddress,
		ShippingWard:     req.ShippingWard,
		ShippingDistrict: req.ShippingDistrict,
		ShippingProvince: req.ShippingProvince,
	}

	if req.PaymentMethod == models.PaymentMethodBankTransfer {
		deadline := time.Now().Add(cfg.PaymentWindow)
		order.PaymentDeadline = &deadline
		order.Status = models.OrderStatusAwaitingPayment
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		var orderItems []models.OrderItem

		for _, item := range items {
			if item.Product.Stock < item.Quantity {
				return fmt.Errorf("not enough stock for %s", item.Product.Name)
			}
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}
			lineTotal := item.Product.Price * float64(item.Quantity)
			subtotal += lineTotal
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
				Total:     lineTotal,
			})
		}

		order.Subtotal = subtotal
		order.ShippingFee = shippingFee
		order.Total = subtotal + shippingFee
		order.OrderItems = orderItems

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		utils.LogError("Failed to place order for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Failed to place order", err.Error())
		return
	}
	utils.LogInfo("Created order %s for user ID: %d", order.ID, user.ID)

	resp := gin.H{
		"order_id":       order.ID,
		"total":          order.Total,
		"payment_method": order.PaymentMethod,
		"status":         order.Status,
	}

	if order.PaymentMethod == models.PaymentMethodBankTransfer {
		resp["payment_url"] = "/v1/checkout/payment/" + order.ID
		resp["payment_deadline"] = order.PaymentDeadline
		StartPaymentWatch(order.ID, cfg.PollInterval)
	}

	utils.Created(c, "Order placed successfully", resp)
}
