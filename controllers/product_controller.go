package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khanhtran-03/shopsphere/config"
	"github.com/khanhtran-03/shopsphere/models"
	"github.com/khanhtran-03/shopsphere/utils"
)

// GET /products
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Product{}).Where("blocked = ?", false)

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to list products: %v", err)
		utils.InternalServerError(c, "Failed to list products", nil)
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", products, total, pagination.Page, pagination.Limit)
}

// GET /products/:id
func GetProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ? AND blocked = ?", productID, false).First(&product).Error; err != nil {
		utils.LogError("Product not found: %d", productID)
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product retrieved successfully", gin.H{"product": product})
}
