package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khanhtran-03/shopsphere/config"
	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/utils"
)

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return models.User{}, false
	}
	return user, true
}

// POST /cart
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ? AND blocked = ?", req.ProductID, false).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if product.Stock < req.Quantity {
		utils.BadRequest(c, "Not enough stock available", gin.H{"available": product.Stock})
		return
	}

	var item models.CartItem
	err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).First(&item).Error
	if err == nil {
		item.Quantity += req.Quantity
		if product.Stock < item.Quantity {
			utils.BadRequest(c, "Not enough stock available", gin.H{"available": product.Stock})
			return
		}
		config.DB.Save(&item)
	} else {
		item = models.CartItem{UserID: user.ID, ProductID: req.ProductID, Quantity: req.Quantity}
		config.DB.Create(&item)
	}
	utils.LogInfo("Cart updated for user ID: %d, product ID: %d", user.ID, req.ProductID)

	utils.Success(c, "Product added to cart", nil)
}

// GET /cart
func GetCart(c *gin.Context) {
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
			"image_url":  item.Product.ImageURL,
			"price":      item.Product.Price,
			"quantity":   item.Quantity,
			"total":      lineTotal,
		})
	}

	utils.Success(c, "Cart retrieved successfully", gin.H{
		"items":    lines,
		"subtotal": subtotal,
	})
}

// PUT /cart/:productId
func UpdateCartItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var item models.CartItem
	if err := config.DB.Preload("Product").Where("user_id = ? AND product_id = ?", user.ID, productID).First(&item).Error; err != nil {
		utils.NotFound(c, "Item not in cart")
		return
	}
	if item.Product.Stock < req.Quantity {
		utils.BadRequest(c, "Not enough stock available", gin.H{"available": item.Product.Stock})
		return
	}

	item.Quantity = req.Quantity
	config.DB.Save(&item)

	utils.Success(c, "Cart updated", nil)
}

// DELETE /cart/:productId
func RemoveFromCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	config.DB.Where("user_id = ? AND product_id = ?", user.ID, productID).Delete(&models.CartItem{})
	utils.Success(c, "Product removed from cart", nil)
}

// DELETE /cart
func ClearCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	config.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{})
	utils.Success(c, "Cart cleared", nil)
}
