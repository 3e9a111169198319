package postgres

import (
	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Champion{},
		&domain.Skin{},
		&domain.UserUnlock{},
		&domain.DailyBonusState{},
		&domain.Comment{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		Ledger:     NewLedgerRepository(db),
		Champion:   NewChampionRepository(db),
		Skin:       NewSkinRepository(db),
		Unlock:     NewUnlockRepository(db),
		DailyBonus: NewDailyBonusRepository(db),
		Comment:    NewCommentRepository(db),
	}
}
