package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/teamkudos/recognition/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id string) (*models.Profile, error)
	GetProfileByEmail(email string) (*models.Profile, error)
	GetProfileByFirebaseUID(firebaseUID string) (*models.Profile, error)
	GetProfiles() ([]models.Profile, error)
	GetProfilesWithOccasions() ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	UpdateKudosBalance(id string, balance int) error
	UpdateJobTitle(id, jobTitle string) (int64, error)
	SearchProfiles(query string) ([]models.Profile, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile in PostgreSQL
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	return r.db.Create(profile).Error
}

// GetProfileByID retrieves a profile by ID from PostgreSQL
func (r *PostgresProfileRepository) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByEmail retrieves a profile by email from PostgreSQL
func (r *PostgresProfileRepository) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByFirebaseUID retrieves a profile by Firebase UID from PostgreSQL
func (r *PostgresProfileRepository) GetProfileByFirebaseUID(firebaseUID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfiles retrieves all profiles from PostgreSQL
func (r *PostgresProfileRepository) GetProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetProfilesWithOccasions retrieves profiles that have a birthday or
// work anniversary date set
func (r *PostgresProfileRepository) GetProfilesWithOccasions() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Where("birthday IS NOT NULL OR work_anniversary IS NOT NULL").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfile updates an existing profile in PostgreSQL
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// UpdateKudosBalance overwrites a profile's kudos balance. Callers are
// expected to have read the latest balance first (read-then-write).
func (r *PostgresProfileRepository) UpdateKudosBalance(id string, balance int) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Update("kudos_balance", balance).Error
}

// UpdateJobTitle updates a profile's job title and returns the number
// of rows affected. Zero rows with no error indicates the write was
// silently blocked by the store's access policy.
func (r *PostgresProfileRepository) UpdateJobTitle(id, jobTitle string) (int64, error) {
	res := r.db.Model(&models.Profile{}).Where("id = ?", id).Update("job_title", jobTitle)
	return res.RowsAffected, res.Error
}

// SearchProfiles searches for profiles by username or email
func (r *PostgresProfileRepository) SearchProfiles(query string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
