package postgres

import (
	"context"
	"errors"

	"github.com/akis/champion-vault/internal/domain"
	"gorm.io/gorm"
)

type skinRepository struct {
	db *gorm.DB
}

func NewSkinRepository(db *gorm.DB) *skinRepository {
	return &skinRepository{db: db}
}

func (r *skinRepository) Create(ctx context.Context, skin *domain.Skin) error {
	return r.db.WithContext(ctx).Create(skin).Error
}

func (r *skinRepository) Update(ctx context.Context, skin *domain.Skin) error {
	return r.db.WithContext(ctx).Save(skin).Error
}

func (r *skinRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Skin{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *skinRepository) GetByID(ctx context.Context, id uint) (*domain.Skin, error) {
	var skin domain.Skin
	err := r.db.WithContext(ctx).First(&skin, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &skin, nil
}

func (r *skinRepository) GetByChampionID(ctx context.Context, championID uint) ([]*domain.Skin, error) {
	var skins []*domain.Skin
	err := r.db.WithContext(ctx).Where("champion_id = ?", championID).Order("id ASC").Find(&skins).Error
	if err != nil {
		return nil, err
	}
	return skins, nil
}

func (r *skinRepository) FirstSkinID(ctx context.Context, championID uint) (uint, error) {
	var skin domain.Skin
	err := r.db.WithContext(ctx).
		Where("champion_id = ?", championID).
		Order("id ASC").
		Select("id").
		First(&skin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return skin.ID, nil
}
