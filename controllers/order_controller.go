package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/khanhtran-03/shopsphere/config"
	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/utils"
)

// ListOrders lists all orders for the logged-in user, with optional filters
func ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var orders []models.Order
	query := config.DB.Where("user_id = ?", user.ID)

	if id := c.Query("id"); id != "" {
		query = query.Where("id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at DESC").Preload("OrderItems.Product").Find(&orders)

	summaries := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, gin.H{
			"id":             o.ID,
			"date":           o.CreatedAt.Format("2006-01-02 15:04:05"),
			"status":         o.Status,
			"payment_status": o.PaymentStatus,
			"total":          o.Total,
		})
	}
	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": summaries})
}

// GetOrderDetails returns detailed info for a specific order
func GetOrderDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orderID := c.Param("id")
	var order models.Order
	if err := config.DB.Preload("OrderItems.Product").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": order})
}
