package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/controllers"
	"github.com/whattheframe/engraving-app/models"
	"github.com/whattheframe/engraving-app/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.ProductType{},
		&models.Order{},
		&models.OrderImage{},
		&models.ProcessingLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders/:uid", orderCtrl.GetOrderByUID)
	router.PATCH("/orders/:uid", orderCtrl.UpdateOrder)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	db.Create(&models.ProductType{ID: 1, Name: "Keychain", Active: true, CreatedAt: time.Now()})
	db.Create(&models.Employee{ID: 1, Name: "Meera", Role: models.RoleDesigner, Active: true, CreatedAt: time.Now()})

	payload := map[string]interface{}{
		"order_number": "WTF-1001",
		"designer_id":  1,
		"images": []map[string]interface{}{
			{"url": "https://drive.google.com/file/d/AbC123/view", "product_type_id": 1},
			{"url": "   "},
		},
	}

	w := doJSON(t, router, "POST", "/orders", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.Equal(t, true, createResp["status"])
	data := createResp["data"].(map[string]interface{})
	uid := data["uid"].(string)
	assert.NotEmpty(t, uid)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "Meera", data["designer"])

	// The blank image URL was dropped; the Drive link got a thumbnail.
	images := data["images"].([]interface{})
	if assert.Len(t, images, 1) {
		img := images[0].(map[string]interface{})
		assert.Equal(t, "https://drive.google.com/thumbnail?id=AbC123&sz=w400", img["thumbnail"])
		assert.Equal(t, "Keychain", img["product_type"])
	}

	w = doJSON(t, router, "GET", "/orders/"+uid, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var getResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &getResp))
	getData := getResp["data"].(map[string]interface{})
	assert.Equal(t, uid, getData["uid"])
}

func TestCreateOrderRequiresOrderNumber(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{"order_number": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["status"])
	assert.Equal(t, "Order number is required", resp["message"])
}

func TestClaimAndCompleteFlow(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	order := models.Order{
		UID:         "12345",
		OrderNumber: "WTF-2002",
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	assert.NoError(t, db.Create(&order).Error)

	// Claim
	w := doJSON(t, router, "PATCH", "/orders/12345", map[string]interface{}{
		"status":      "processing",
		"team_member": "Sreerag",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Second claim loses the race.
	w = doJSON(t, router, "PATCH", "/orders/12345", map[string]interface{}{
		"status":      "processing",
		"team_member": "Arun",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	var conflictResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflictResp))
	assert.Equal(t, false, conflictResp["status"])
	assert.Equal(t, "Order is already being processed", conflictResp["message"])

	var stored models.Order
	assert.NoError(t, db.First(&stored, "uid = ?", "12345").Error)
	assert.Equal(t, "Sreerag", stored.TeamMember)

	// Complete
	w = doJSON(t, router, "PATCH", "/orders/12345", map[string]interface{}{
		"status": "completed",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, db.First(&stored, "uid = ?", "12345").Error)
	assert.Equal(t, models.StatusCompleted, stored.Status)
	assert.NotNil(t, stored.ClaimedAt)
	assert.NotNil(t, stored.CompletedAt)

	var logCount int64
	assert.NoError(t, db.Model(&models.ProcessingLog{}).Count(&logCount).Error)
	assert.Equal(t, int64(1), logCount)
}

func TestUpdateUnknownOrderIs404(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	w := doJSON(t, router, "PATCH", "/orders/nope", map[string]interface{}{
		"status": "processing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
