package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teamkudos/recognition/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	CreateReaction(reaction *models.Reaction) error
	GetReaction(nominationID, userID string) (*models.Reaction, error)
	GetReactionsByNominationID(nominationID string) ([]models.Reaction, error)
	GetAllReactions() ([]models.Reaction, error)
	UpdateReactionType(id string, reactionType models.ReactionType) error
	DeleteReaction(id string) error
	DeleteByNominationID(nominationID string) error
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction creates a new reaction in PostgreSQL
func (r *PostgresReactionRepository) CreateReaction(reaction *models.Reaction) error {
	if reaction.ID == "" {
		reaction.ID = uuid.NewString()
	}
	if reaction.CreatedAt.IsZero() {
		reaction.CreatedAt = time.Now()
	}
	return r.db.Create(reaction).Error
}

// GetReaction retrieves a user's reaction on a nomination, if any
func (r *PostgresReactionRepository) GetReaction(nominationID, userID string) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.Where("nomination_id = ? AND user_id = ?", nominationID, userID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// GetReactionsByNominationID retrieves all reactions for a nomination
func (r *PostgresReactionRepository) GetReactionsByNominationID(nominationID string) ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := r.db.Where("nomination_id = ?", nominationID).Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// GetAllReactions retrieves every reaction, used for feed enrichment
func (r *PostgresReactionRepository) GetAllReactions() ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := r.db.Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// UpdateReactionType changes the type of an existing reaction in place
func (r *PostgresReactionRepository) UpdateReactionType(id string, reactionType models.ReactionType) error {
	return r.db.Model(&models.Reaction{}).Where("id = ?", id).Update("type", reactionType).Error
}

// DeleteReaction deletes a reaction by ID
func (r *PostgresReactionRepository) DeleteReaction(id string) error {
	res := r.db.Delete(&models.Reaction{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reaction not found")
	}
	return nil
}

// DeleteByNominationID removes all reactions attached to a nomination
func (r *PostgresReactionRepository) DeleteByNominationID(nominationID string) error {
	return r.db.Where("nomination_id = ?", nominationID).Delete(&models.Reaction{}).Error
}
