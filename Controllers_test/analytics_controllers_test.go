package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/controllers"
	"github.com/whattheframe/engraving-app/models"
	"github.com/whattheframe/engraving-app/utils"
)

func setupAnalyticsRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	analyticsCtrl := controllers.NewAnalyticsController(db)
	router.GET("/analytics", analyticsCtrl.GetAnalytics)
	router.GET("/completed-orders", analyticsCtrl.GetCompletedOrders)
	router.GET("/processing-logs", analyticsCtrl.GetProcessingLogs)
	return router
}

func seedCompletedOrder(t *testing.T, db *gorm.DB, uid, member string, claimed, completed time.Time) {
	order := models.Order{
		UID:         uid,
		OrderNumber: "WTF-" + uid,
		Status:      models.StatusCompleted,
		TeamMember:  member,
		CreatedAt:   claimed,
		ClaimedAt:   &claimed,
		CompletedAt: &completed,
	}
	assert.NoError(t, db.Create(&order).Error)
}

func TestGetAnalyticsTeamStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAnalyticsRouter(db)

	now := time.Now()
	seedCompletedOrder(t, db, "1", "Arun", now.Add(-90*time.Minute), now.Add(-60*time.Minute))
	seedCompletedOrder(t, db, "2", "Arun", now.Add(-50*time.Minute), now.Add(-30*time.Minute))
	seedCompletedOrder(t, db, "3", "Sreerag", now.Add(-45*time.Minute), now.Add(-5*time.Minute))

	w := doJSON(t, router, "GET", "/analytics?period=day", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "day", data["period"])

	stats := data["teamStats"].([]interface{})
	if assert.Len(t, stats, 2) {
		top := stats[0].(map[string]interface{})
		assert.Equal(t, "Arun", top["name"])
		assert.Equal(t, float64(2), top["completed_orders"])
		assert.Equal(t, float64(25), top["avg_processing_minutes"])
	}
}

func TestGetCompletedOrdersDurations(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAnalyticsRouter(db)

	now := time.Now()
	seedCompletedOrder(t, db, "1", "Arun", now.Add(-2*time.Hour), now.Add(-90*time.Minute))
	seedCompletedOrder(t, db, "2", "Sreerag", now.Add(-time.Hour), now.Add(-15*time.Minute))

	w := doJSON(t, router, "GET", "/completed-orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	if assert.Len(t, list, 2) {
		first := list[0].(map[string]interface{})
		// Most recent completion first.
		assert.Equal(t, "2", first["uid"])
		assert.Equal(t, float64(45), first["processing_minutes"])
	}
}

func TestGetProcessingLogsNewestFirst(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAnalyticsRouter(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		log := models.ProcessingLog{
			OrderUID:     "1",
			OrderNumber:  "WTF-1",
			EmployeeName: "Arun",
			StartTime:    base,
			EndTime:      base.Add(10 * time.Minute),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, db.Create(&log).Error)
	}

	w := doJSON(t, router, "GET", "/processing-logs", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	if assert.Len(t, list, 3) {
		first := list[0].(map[string]interface{})
		last := list[2].(map[string]interface{})
		assert.True(t, first["created_at"].(string) >= last["created_at"].(string))
	}
}
