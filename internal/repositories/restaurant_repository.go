package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tavolo-app/backend/internal/apperror"
	"github.com/tavolo-app/backend/internal/models"
)

// RestaurantRepository defines the interface for canonical restaurant records
type RestaurantRepository interface {
	Upsert(restaurant *models.Restaurant) error
	GetRestaurantByID(id uint) (*models.Restaurant, error)
}

// PostgresRestaurantRepository implements RestaurantRepository for PostgreSQL
type PostgresRestaurantRepository struct {
	db *gorm.DB
}

// NewPostgresRestaurantRepository creates a new PostgresRestaurantRepository
func NewPostgresRestaurantRepository(db *gorm.DB) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{db: db}
}

// Upsert inserts the restaurant or, when a row with the same place_id already
// exists, overwrites its name, address and coordinates with the latest values
// (last write wins). The struct is reloaded afterwards so callers always see
// the canonical row id.
func (r *PostgresRestaurantRepository) Upsert(restaurant *models.Restaurant) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "place_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "latitude", "longitude", "updated_at"}),
	}).Create(restaurant).Error
	if err != nil {
		return err
	}
	return r.db.Where("place_id = ?", restaurant.PlaceID).First(restaurant).Error
}

func (r *PostgresRestaurantRepository) GetRestaurantByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("restaurant", id)
		}
		return nil, err
	}
	return &restaurant, nil
}
