package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/database"
	"github.com/whattheframe/engraving-app/events"
	"github.com/whattheframe/engraving-app/models"
	"github.com/whattheframe/engraving-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> counters for the dashboard header.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders int64 `json:"total_orders"`
		TodayOrders int64 `json:"today_orders"`
		OrderStats  struct {
			Pending    int64 `json:"pending"`
			Processing int64 `json:"processing"`
			Completed  int64 `json:"completed"`
		} `json:"order_stats"`
		Employees    int64 `json:"employees"`
		ProductTypes int64 `json:"product_types"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&stats.OrderStats.Pending)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.StatusProcessing).Count(&stats.OrderStats.Processing)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.StatusCompleted).Count(&stats.OrderStats.Completed)

	ac.DB.Model(&models.Employee{}).Where("active = ?", true).Count(&stats.Employees)
	ac.DB.Model(&models.ProductType{}).Where("active = ?", true).Count(&stats.ProductTypes)

	events.BroadcastDashboardUpdate(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// InitDefaults -> seed the default employees and product types.
func (ac *AdminController) InitDefaults(c *gin.Context) {
	if err := database.SeedDefaults(ac.DB); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Database initialized", nil)
}
