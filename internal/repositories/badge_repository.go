package repositories

import (
	"github.com/teamkudos/recognition/backend/internal/models"
	"gorm.io/gorm"
)

// BadgeRepository defines the interface for badge catalog reads
type BadgeRepository interface {
	GetBadges() ([]models.Badge, error)
	GetBadgeByID(id string) (*models.Badge, error)
	Seed(badges []models.Badge) error
}

// PostgresBadgeRepository implements BadgeRepository for PostgreSQL
type PostgresBadgeRepository struct {
	db *gorm.DB
}

// NewPostgresBadgeRepository creates a new PostgresBadgeRepository
func NewPostgresBadgeRepository(db *gorm.DB) *PostgresBadgeRepository {
	return &PostgresBadgeRepository{db: db}
}

// GetBadges retrieves the full badge catalog from PostgreSQL
func (r *PostgresBadgeRepository) GetBadges() ([]models.Badge, error) {
	var badges []models.Badge
	if err := r.db.Order("id").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

// GetBadgeByID retrieves a badge by ID from PostgreSQL
func (r *PostgresBadgeRepository) GetBadgeByID(id string) (*models.Badge, error) {
	var badge models.Badge
	if err := r.db.First(&badge, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

// Seed inserts the default catalog when the badges table is empty
func (r *PostgresBadgeRepository) Seed(badges []models.Badge) error {
	var count int64
	if err := r.db.Model(&models.Badge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.Create(&badges).Error
}
