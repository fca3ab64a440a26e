package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/services"
	"github.com/whattheframe/engraving-app/utils"
)

type BackupController struct {
	Backups *services.BackupService
}

func NewBackupController(db *gorm.DB) *BackupController {
	return &BackupController{Backups: services.NewBackupService(db)}
}

// Backup -> full JSON dump of all four collections, served as a
// download. The body is the backup file format itself, not the usual
// response envelope, so a saved file can be fed straight to restore.
func (bc *BackupController) Backup(c *gin.Context) {
	backup, err := bc.Backups.Snapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("engraving-backup-%d.json", time.Now().UnixMilli())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, backup)
}

// Restore -> replace collections from an uploaded dump. Collections
// absent from the file are left untouched; the response carries a
// per-collection success flag the caller must inspect.
func (bc *BackupController) Restore(c *gin.Context) {
	var backup services.Backup
	if err := c.ShouldBindJSON(&backup); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	results, err := bc.Backups.Restore(&backup)
	if err != nil {
		if errors.Is(err, services.ErrMissingData) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	message := "Data restored successfully"
	if !results.AllOK() {
		message = "Some data failed to restore"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": results.AllOK(),
		"message": message,
		"results": results,
	})
}
