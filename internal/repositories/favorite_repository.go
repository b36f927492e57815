package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tavolo-app/backend/internal/apperror"
	"github.com/tavolo-app/backend/internal/models"
)

// FavoriteRepository defines the interface for a profile's set of favorite
// reviews. Both add and remove are idempotent from the caller's perspective.
type FavoriteRepository interface {
	AddFavorite(fav *models.FavoriteReview) error
	RemoveFavorite(profileID, reviewID uint) error
	IsFavorite(profileID, reviewID uint) (bool, error)
	ListFavorites(profileID uint) ([]models.FavoriteReview, error)
}

// PostgresFavoriteRepository implements FavoriteRepository for PostgreSQL
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

// NewPostgresFavoriteRepository creates a new PostgresFavoriteRepository
func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

// AddFavorite inserts the entry. The unique pair index turns a duplicate into
// a conflict, which callers treat as a no-op.
func (r *PostgresFavoriteRepository) AddFavorite(fav *models.FavoriteReview) error {
	if err := r.db.Create(fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("review already favorited")
		}
		return err
	}
	return nil
}

// RemoveFavorite deletes the entry; removing an absent one is a no-op.
func (r *PostgresFavoriteRepository) RemoveFavorite(profileID, reviewID uint) error {
	return r.db.
		Where("profile_id = ? AND review_id = ?", profileID, reviewID).
		Delete(&models.FavoriteReview{}).Error
}

func (r *PostgresFavoriteRepository) IsFavorite(profileID, reviewID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.FavoriteReview{}).
		Where("profile_id = ? AND review_id = ?", profileID, reviewID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresFavoriteRepository) ListFavorites(profileID uint) ([]models.FavoriteReview, error) {
	var favorites []models.FavoriteReview
	err := r.db.Where("profile_id = ?", profileID).Order("created_at DESC").Find(&favorites).Error
	return favorites, err
}
