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

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GetAllEmployees -> active employees, optionally filtered by role for
// the form dropdowns.
func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	query := ec.DB.Where("active = ?", true)
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var employees []models.Employee
	if err := query.Order("id asc").Find(&employees).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", employees)
}

// CreateEmployee -> add a team member from the settings page.
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name == "" || body.Role == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Name and role are required"))
		return
	}
	if body.Role != models.RoleDesigner && body.Role != models.RoleEngraver {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role must be designer or engraver"))
		return
	}

	employee := models.Employee{
		ID:        nextID(ec.DB, &models.Employee{}),
		Name:      body.Name,
		Role:      body.Role,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := ec.DB.Create(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Employee added", employee)
}

// DeleteEmployee -> soft delete so historical orders keep the name.
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	var body struct {
		ID uint `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Employee ID is required"))
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, body.ID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("employee not found"))
		return
	}

	employee.Active = false
	if err := ec.DB.Save(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee removed", gin.H{"id": body.ID})
}

// nextID assigns ids as max(existing)+1; soft-deleted rows still count
// so ids are never reused.
func nextID(db *gorm.DB, model interface{}) uint {
	var maxID int64
	db.Model(model).Select("COALESCE(MAX(id), 0)").Row().Scan(&maxID)
	return uint(maxID) + 1
}
