package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/models"
	"github.com/whattheframe/engraving-app/services"
	"github.com/whattheframe/engraving-app/utils"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// GetAnalytics -> per-engraver throughput over ?period=day|week|month|all
// (default week). First row is the top performer.
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	period := c.DefaultQuery("period", "week")

	var orders []models.Order
	if err := ac.DB.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := services.ComputeTeamStats(orders, period, time.Now())

	utils.RespondJSON(c, http.StatusOK, "Team analytics", gin.H{
		"period":    period,
		"teamStats": stats,
	})
}

// GetCompletedOrders -> most recent completed work with derived
// processing durations for the recent page.
func (ac *AnalyticsController) GetCompletedOrders(c *gin.Context) {
	var orders []models.Order
	if err := ac.DB.Preload("Images").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := services.CompletedOrdersView(orders, services.DefaultCompletedLimit)

	utils.RespondJSON(c, http.StatusOK, "Completed orders", views)
}

// GetProcessingLogs -> the audit trail, newest first.
func (ac *AnalyticsController) GetProcessingLogs(c *gin.Context) {
	var logs []models.ProcessingLog
	if err := ac.DB.Order("created_at desc, id desc").Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Processing logs", logs)
}
