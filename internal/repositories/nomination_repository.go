package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teamkudos/recognition/backend/internal/models"
	"gorm.io/gorm"
)

// NominationRepository defines the interface for nomination data operations
type NominationRepository interface {
	CreateNomination(nomination *models.Nomination) error
	GetNominationByID(id string) (*models.Nomination, error)
	GetNominations() ([]models.Nomination, error)
	GetNominationsByStatus(status models.NominationStatus) ([]models.Nomination, error)
	GetApprovedByMessageInYear(marker string, year int) ([]models.Nomination, error)
	SetStatus(id string, status models.NominationStatus, approvedAt *time.Time, approvedBy *string) error
	DeleteNomination(id string) error
}

// PostgresNominationRepository implements NominationRepository for PostgreSQL
type PostgresNominationRepository struct {
	db *gorm.DB
}

// NewPostgresNominationRepository creates a new PostgresNominationRepository
func NewPostgresNominationRepository(db *gorm.DB) *PostgresNominationRepository {
	return &PostgresNominationRepository{db: db}
}

// CreateNomination creates a new nomination in PostgreSQL
func (r *PostgresNominationRepository) CreateNomination(nomination *models.Nomination) error {
	if nomination.ID == "" {
		nomination.ID = uuid.NewString()
	}
	if nomination.CreatedAt.IsZero() {
		nomination.CreatedAt = time.Now()
	}
	return r.db.Create(nomination).Error
}

// GetNominationByID retrieves a nomination by ID with joined sender,
// receiver and badge data
func (r *PostgresNominationRepository) GetNominationByID(id string) (*models.Nomination, error) {
	var nomination models.Nomination
	if err := r.db.Preload("Sender").Preload("Receiver").Preload("Badge").First(&nomination, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &nomination, nil
}

// GetNominations retrieves all nominations newest first with joined data
func (r *PostgresNominationRepository) GetNominations() ([]models.Nomination, error) {
	var nominations []models.Nomination
	if err := r.db.Preload("Sender").Preload("Receiver").Preload("Badge").
		Order("created_at DESC").Find(&nominations).Error; err != nil {
		return nil, err
	}
	return nominations, nil
}

// GetNominationsByStatus retrieves all nominations in the given status
func (r *PostgresNominationRepository) GetNominationsByStatus(status models.NominationStatus) ([]models.Nomination, error) {
	var nominations []models.Nomination
	if err := r.db.Preload("Sender").Preload("Receiver").Preload("Badge").
		Where("status = ?", status).Order("created_at DESC").Find(&nominations).Error; err != nil {
		return nil, err
	}
	return nominations, nil
}

// GetApprovedByMessageInYear retrieves approved nominations created in
// the given calendar year whose message contains the marker text. Used
// by the occasion duplicate check.
func (r *PostgresNominationRepository) GetApprovedByMessageInYear(marker string, year int) ([]models.Nomination, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	yearEnd := time.Date(year, time.December, 31, 23, 59, 59, 0, time.Local)

	var nominations []models.Nomination
	if err := r.db.Where("status = ? AND message ILIKE ? AND created_at BETWEEN ? AND ?",
		models.StatusApproved, "%"+marker+"%", yearStart, yearEnd).
		Find(&nominations).Error; err != nil {
		return nil, err
	}
	return nominations, nil
}

// SetStatus updates a nomination's lifecycle status and approval stamp.
// A targeted update keeps gorm away from the preloaded associations.
func (r *PostgresNominationRepository) SetStatus(id string, status models.NominationStatus, approvedAt *time.Time, approvedBy *string) error {
	updates := map[string]interface{}{"status": status}
	if approvedAt != nil {
		updates["approved_at"] = approvedAt
	}
	if approvedBy != nil {
		updates["approved_by"] = approvedBy
	}
	return r.db.Model(&models.Nomination{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteNomination deletes a nomination by ID from PostgreSQL
func (r *PostgresNominationRepository) DeleteNomination(id string) error {
	res := r.db.Delete(&models.Nomination{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("nomination not found")
	}
	return nil
}
