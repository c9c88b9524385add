package repo

import (
	"depositrecon/internal/models"
)

func (r *Repository) CreateFetchRun(run *models.FetchRun) error {
	return r.db.Create(run).Error
}

func (r *Repository) GetFetchRunByID(id string) (*models.FetchRun, error) {
	var run models.FetchRun
	if err := r.db.First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *Repository) ListFetchRuns(limit int) ([]models.FetchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	runs := make([]models.FetchRun, 0)
	if err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *Repository) ListFetchRunsByDate(fetchDate string) ([]models.FetchRun, error) {
	runs := make([]models.FetchRun, 0)
	if err := r.db.Where("fetch_date = ?", fetchDate).Order("started_at DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *Repository) UpdateFetchRun(run *models.FetchRun) error {
	return r.db.Save(run).Error
}
