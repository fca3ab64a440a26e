package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/events"
	"github.com/whattheframe/engraving-app/models"
	"github.com/whattheframe/engraving-app/services"
	"github.com/whattheframe/engraving-app/utils"
)

type OrderController struct {
	DB        *gorm.DB
	Lifecycle *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:        db,
		Lifecycle: services.NewOrderService(db),
	}
}

// GetAllOrders -> newest first, with design images.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Images").Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> new pending order from the order form.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ImageReq struct {
		URL           string `json:"url"`
		ProductTypeID *uint  `json:"product_type_id,omitempty"`
	}

	type ReqBody struct {
		OrderNumber string     `json:"order_number"`
		DesignerID  *uint      `json:"designer_id,omitempty"`
		Images      []ImageReq `json:"images"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if strings.TrimSpace(body.OrderNumber) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Order number is required"))
		return
	}

	now := time.Now()
	order := models.Order{
		UID:         strconv.FormatInt(now.UnixMilli(), 10),
		OrderNumber: body.OrderNumber,
		Status:      models.StatusPending,
		CreatedAt:   now,
	}

	if body.DesignerID != nil {
		var designer models.Employee
		if err := oc.DB.First(&designer, *body.DesignerID).Error; err == nil {
			order.DesignerID = body.DesignerID
			order.Designer = designer.Name
		}
	}

	for _, img := range body.Images {
		url := strings.TrimSpace(img.URL)
		if url == "" {
			continue
		}
		image := models.OrderImage{
			URL:       url,
			Thumbnail: utils.DriveThumbnail(url),
		}
		if img.ProductTypeID != nil {
			var productType models.ProductType
			if err := oc.DB.First(&productType, *img.ProductTypeID).Error; err == nil {
				image.ProductTypeID = img.ProductTypeID
				image.ProductType = productType.Name
			}
		}
		order.Images = append(order.Images, image)
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderCreated(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByUID -> detail for the order page.
func (oc *OrderController) GetOrderByUID(c *gin.Context) {
	uid := c.Param("uid")

	var order models.Order
	if err := oc.DB.Preload("Images").First(&order, "uid = ?", uid).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> claim or complete via the lifecycle state machine.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	uid := c.Param("uid")

	var req services.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Lifecycle.ApplyTransition(uid, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrAlreadyProcessing):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	switch order.Status {
	case models.StatusProcessing:
		events.BroadcastOrderClaimed(*order)
	case models.StatusCompleted:
		events.BroadcastOrderCompleted(*order)
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}
