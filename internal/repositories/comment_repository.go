package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/teamkudos/recognition/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id string) (*models.Comment, error)
	GetCommentsByNominationID(nominationID string) ([]models.Comment, error)
	GetAllComments() ([]models.Comment, error)
	DeleteComment(id string) error
	DeleteByNominationID(nominationID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByNominationID retrieves all comments for a nomination,
// oldest first
func (r *PostgresCommentRepository) GetCommentsByNominationID(nominationID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("nomination_id = ?", nominationID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetAllComments retrieves every comment, used for feed enrichment
func (r *PostgresCommentRepository) GetAllComments() ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment deletes a comment by ID. Replies are not cascaded.
func (r *PostgresCommentRepository) DeleteComment(id string) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}

// DeleteByNominationID removes all comments attached to a nomination
func (r *PostgresCommentRepository) DeleteByNominationID(nominationID string) error {
	return r.db.Where("nomination_id = ?", nominationID).Delete(&models.Comment{}).Error
}
