package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/models"
	"github.com/whattheframe/engraving-app/utils"
)

type ProductTypeController struct {
	DB *gorm.DB
}

func NewProductTypeController(db *gorm.DB) *ProductTypeController {
	return &ProductTypeController{DB: db}
}

// GetAllProductTypes -> active product types for the order form.
func (pc *ProductTypeController) GetAllProductTypes(c *gin.Context) {
	var types []models.ProductType
	if err := pc.DB.Where("active = ?", true).Order("id asc").Find(&types).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of product types", types)
}

// CreateProductType
func (pc *ProductTypeController) CreateProductType(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Name is required"))
		return
	}

	productType := models.ProductType{
		ID:        nextID(pc.DB, &models.ProductType{}),
		Name:      body.Name,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := pc.DB.Create(&productType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product type added", productType)
}

// DeleteProductType -> soft delete by id.
func (pc *ProductTypeController) DeleteProductType(c *gin.Context) {
	var body struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Product type ID is required"))
		return
	}

	var productType models.ProductType
	if err := pc.DB.First(&productType, body.ID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product type not found"))
		return
	}

	productType.Active = false
	if err := pc.DB.Save(&productType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product type removed", gin.H{"id": body.ID})
}
