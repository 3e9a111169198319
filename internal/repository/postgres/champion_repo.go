package postgres

import (
	"context"
	"errors"

	"github.com/akis/champion-vault/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type championRepository struct {
	db *gorm.DB
}

func NewChampionRepository(db *gorm.DB) *championRepository {
	return &championRepository{db: db}
}

func (r *championRepository) Create(ctx context.Context, champion *domain.Champion) error {
	return r.db.WithContext(ctx).Create(champion).Error
}

// Upsert refreshes champion metadata without touching the unlock
// economics columns, so a catalog sync never resets an admin-tuned
// cost or default-unlock flag.
func (r *championRepository) Upsert(ctx context.Context, champion *domain.Champion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "role", "region", "description", "image_url", "stats", "updated_at"}),
	}).Create(champion).Error
}

func (r *championRepository) UpsertMany(ctx context.Context, champions []*domain.Champion) error {
	if len(champions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "role", "region", "description", "image_url", "stats", "updated_at"}),
	}).Create(champions).Error
}

func (r *championRepository) Update(ctx context.Context, champion *domain.Champion) error {
	return r.db.WithContext(ctx).Save(champion).Error
}

func (r *championRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Champion{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *championRepository) GetAll(ctx context.Context) ([]*domain.Champion, error) {
	var champions []*domain.Champion
	err := r.db.WithContext(ctx).Order("name ASC").Find(&champions).Error
	if err != nil {
		return nil, err
	}
	return champions, nil
}

func (r *championRepository) GetByID(ctx context.Context, id uint) (*domain.Champion, error) {
	var champion domain.Champion
	err := r.db.WithContext(ctx).First(&champion, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &champion, nil
}
