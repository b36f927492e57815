package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tavolo-app/backend/internal/apperror"
	"github.com/tavolo-app/backend/internal/models"
)

// ReviewRepository defines the interface for review data operations. Update
// and delete are scoped to the acting author: the store is the sole arbiter of
// ownership, a mismatch simply affects zero rows and reads as not-found.
type ReviewRepository interface {
	CreateReview(review *models.Review) error
	GetReviewByID(id uint) (*models.Review, error)
	UpdateOwnedReview(id uint, userID string, body string, rating int) (*models.Review, error)
	DeleteOwnedReview(id uint, userID string) error
	ListByAuthor(userID string) ([]models.Review, error)
	ListByAuthors(userIDs []string) ([]models.Review, error)
	ListAll() ([]models.Review, error)
}

// PostgresReviewRepository implements ReviewRepository for PostgreSQL
type PostgresReviewRepository struct {
	db *gorm.DB
}

// NewPostgresReviewRepository creates a new PostgresReviewRepository
func NewPostgresReviewRepository(db *gorm.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *PostgresReviewRepository) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("review", id)
		}
		return nil, err
	}
	return &review, nil
}

func (r *PostgresReviewRepository) UpdateOwnedReview(id uint, userID string, body string, rating int) (*models.Review, error) {
	res := r.db.Model(&models.Review{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"body": body, "rating": rating})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("review", id)
	}
	return r.GetReviewByID(id)
}

func (r *PostgresReviewRepository) DeleteOwnedReview(id uint, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("review", id)
	}
	return nil
}

func (r *PostgresReviewRepository) ListByAuthor(userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *PostgresReviewRepository) ListByAuthors(userIDs []string) ([]models.Review, error) {
	var reviews []models.Review
	if len(userIDs) == 0 {
		return reviews, nil
	}
	err := r.db.Where("user_id IN ?", userIDs).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *PostgresReviewRepository) ListAll() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}
