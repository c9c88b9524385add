package repo

import (
	"errors"

	"depositrecon/internal/models"
	typesRepo "depositrecon/pkg/types/repo"

	"gorm.io/gorm"
)

var ErrNilDatabase = errors.New("database cannot be nil")

var _ typesRepo.Repository = (*Repository)(nil)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&models.Deposit{},
		&models.FetchRun{},
	)
}
