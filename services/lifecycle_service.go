package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/whattheframe/engraving-app/models"
)

var (
	// ErrOrderNotFound is returned for an unknown order uid.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyProcessing guards the double-claim race: two engravers
	// hitting the same pending order. The message is shown inline on
	// the order page, hence the sentence casing.
	ErrAlreadyProcessing = errors.New("Order is already being processed")
)

// TransitionRequest carries the requested status change and the acting
// team member.
type TransitionRequest struct {
	Status     string `json:"status"`
	TeamMember string `json:"team_member"`
	EngraverID *uint  `json:"engraver_id,omitempty"`
}

// Transition applies a status change to an order in memory and returns
// the processing log entry to append, if completion produced one. The
// caller is responsible for persisting both.
//
// pending -> processing stamps ClaimedAt and records the claimer; a
// claim on an order already processing fails and leaves the order
// untouched. A transition to completed stamps CompletedAt and is
// allowed from any state. Any other requested status is a no-op apart
// from an optional team member update.
func Transition(order *models.Order, req TransitionRequest, now time.Time) (*models.ProcessingLog, error) {
	switch req.Status {
	case models.StatusProcessing:
		if order.Status == models.StatusProcessing {
			return nil, ErrAlreadyProcessing
		}
		order.Status = models.StatusProcessing
		order.ClaimedAt = &now
		if req.TeamMember != "" {
			order.TeamMember = req.TeamMember
		}
		if req.EngraverID != nil {
			order.EngraverID = req.EngraverID
		}
		return nil, nil

	case models.StatusCompleted:
		if req.TeamMember != "" {
			order.TeamMember = req.TeamMember
		}
		if req.EngraverID != nil {
			order.EngraverID = req.EngraverID
		}
		order.Status = models.StatusCompleted
		order.CompletedAt = &now

		// The log is only written for claimed work: without a claim
		// there is no start time or accountable engraver.
		if order.ClaimedAt == nil || order.TeamMember == "" {
			return nil, nil
		}
		return buildLogEntry(order, now), nil

	default:
		if req.TeamMember != "" {
			order.TeamMember = req.TeamMember
		}
		return nil, nil
	}
}

func buildLogEntry(order *models.Order, now time.Time) *models.ProcessingLog {
	return &models.ProcessingLog{
		OrderUID:        order.UID,
		OrderNumber:     order.OrderNumber,
		EmployeeID:      order.EngraverID,
		EmployeeName:    order.TeamMember,
		ProductTypes:    joinProductTypes(order.Images),
		StartTime:       *order.ClaimedAt,
		EndTime:         *order.CompletedAt,
		DurationMinutes: DurationMinutes(*order.ClaimedAt, *order.CompletedAt),
		CreatedAt:       now,
	}
}

// DurationMinutes is the rounded wall-clock span between claim and
// completion.
func DurationMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

func joinProductTypes(images []models.OrderImage) string {
	seen := make(map[string]bool)
	var names []string
	for _, img := range images {
		if img.ProductType == "" || seen[img.ProductType] {
			continue
		}
		seen[img.ProductType] = true
		names = append(names, img.ProductType)
	}
	return strings.Join(names, ", ")
}

// OrderService persists lifecycle transitions.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// ApplyTransition loads an order, runs the state machine and writes the
// result back. The order row update and log append share a transaction
// so a completion never half-lands.
func (os *OrderService) ApplyTransition(uid string, req TransitionRequest) (*models.Order, error) {
	var order models.Order
	if err := os.DB.Preload("Images").First(&order, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	entry, err := Transition(&order, req, time.Now())
	if err != nil {
		return nil, err
	}

	err = os.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images").Save(&order).Error; err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return trimProcessingLogs(tx)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// trimProcessingLogs enforces the FIFO retention cap on the log table.
func trimProcessingLogs(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.ProcessingLog{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= models.ProcessingLogCap {
		return nil
	}

	overflow := int(count - models.ProcessingLogCap)
	var ids []uint
	if err := tx.Model(&models.ProcessingLog{}).
		Order("created_at asc, id asc").
		Limit(overflow).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	return tx.Delete(&models.ProcessingLog{}, ids).Error
}
