package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/models"
)

// Collection names as they appear in backup files.
const (
	CollectionOrders         = "orders"
	CollectionEmployees      = "employees"
	CollectionProductTypes   = "productTypes"
	CollectionProcessingLogs = "processingLogs"
)

// ErrMissingData is returned for a restore payload without a data key.
var ErrMissingData = errors.New("invalid backup file - missing data field")

// Backup is the full JSON dump the backup endpoint serves and the
// restore endpoint accepts.
type Backup struct {
	Timestamp time.Time   `json:"timestamp"`
	Data      *BackupData `json:"data"`
	Stats     BackupStats `json:"stats"`
}

// BackupData holds the four collections. Pointer slices distinguish a
// collection omitted from a backup (left untouched on restore) from an
// explicitly empty one.
type BackupData struct {
	Orders         *[]models.Order         `json:"orders,omitempty"`
	Employees      *[]models.Employee      `json:"employees,omitempty"`
	ProductTypes   *[]models.ProductType   `json:"productTypes,omitempty"`
	ProcessingLogs *[]models.ProcessingLog `json:"processingLogs,omitempty"`
}

type BackupStats struct {
	Orders         int `json:"orders"`
	Employees      int `json:"employees"`
	ProductTypes   int `json:"productTypes"`
	ProcessingLogs int `json:"processingLogs"`
}

// RestoreResults reports per-collection success. Callers must inspect
// the map, not only the overall flag: a partial restore is possible.
type RestoreResults map[string]bool

// AllOK reports whether every attempted collection restored cleanly.
func (r RestoreResults) AllOK() bool {
	for _, ok := range r {
		if !ok {
			return false
		}
	}
	return true
}

// BackupService snapshots and restores the whole record store.
type BackupService struct {
	DB *gorm.DB
}

func NewBackupService(db *gorm.DB) *BackupService {
	return &BackupService{DB: db}
}

// Snapshot reads all four collections into a timestamped dump.
func (bs *BackupService) Snapshot() (*Backup, error) {
	var (
		orders    []models.Order
		employees []models.Employee
		types     []models.ProductType
		logs      []models.ProcessingLog
	)

	if err := bs.DB.Preload("Images").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	if err := bs.DB.Order("id asc").Find(&employees).Error; err != nil {
		return nil, err
	}
	if err := bs.DB.Order("id asc").Find(&types).Error; err != nil {
		return nil, err
	}
	if err := bs.DB.Order("created_at desc, id desc").Find(&logs).Error; err != nil {
		return nil, err
	}

	return &Backup{
		Timestamp: time.Now(),
		Data: &BackupData{
			Orders:         &orders,
			Employees:      &employees,
			ProductTypes:   &types,
			ProcessingLogs: &logs,
		},
		Stats: BackupStats{
			Orders:         len(orders),
			Employees:      len(employees),
			ProductTypes:   len(types),
			ProcessingLogs: len(logs),
		},
	}, nil
}

// Restore replaces each collection present in the dump. Every
// collection is swapped in its own transaction, so one failure does not
// roll back the others; missing collections are left untouched.
func (bs *BackupService) Restore(backup *Backup) (RestoreResults, error) {
	if backup == nil || backup.Data == nil {
		return nil, ErrMissingData
	}

	results := RestoreResults{}

	if backup.Data.Orders != nil {
		results[CollectionOrders] = bs.replaceOrders(*backup.Data.Orders) == nil
	}
	if backup.Data.Employees != nil {
		results[CollectionEmployees] = replaceCollection(bs.DB, &models.Employee{}, *backup.Data.Employees) == nil
	}
	if backup.Data.ProductTypes != nil {
		results[CollectionProductTypes] = replaceCollection(bs.DB, &models.ProductType{}, *backup.Data.ProductTypes) == nil
	}
	if backup.Data.ProcessingLogs != nil {
		results[CollectionProcessingLogs] = replaceCollection(bs.DB, &models.ProcessingLog{}, *backup.Data.ProcessingLogs) == nil
	}

	return results, nil
}

// replaceOrders also clears the image rows owned by the old orders.
func (bs *BackupService) replaceOrders(orders []models.Order) error {
	return bs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.OrderImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}
		return tx.Create(&orders).Error
	})
}

func replaceCollection[T any](db *gorm.DB, model *T, records []T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}
