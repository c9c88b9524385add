package repo

import (
	"depositrecon/internal/models"

	"gorm.io/gorm/clause"
)

var depositReplaceColumns = []string{
	"deposit_amount",
	"bank_icon",
	"status",
	"remark",
	"deposit_type",
	"updated_at",
}

// UpsertDeposit inserts the deposit or replaces every non-key field of the
// stored row sharing its (txn_id, fetch_date). The row ID is assigned by the
// store and the caller's record is left untouched. updated_at advances on
// every upsert, including one that repeats the stored values; it records the
// last time the row was seen upstream, not the last time it changed.
func (r *Repository) UpsertDeposit(deposit *models.Deposit) error {
	row := *deposit
	row.ID = 0
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "txn_id"}, {Name: "fetch_date"}},
		DoUpdates: clause.AssignmentColumns(depositReplaceColumns),
	}).Create(&row).Error
}

func (r *Repository) GetDepositByKey(txnID, fetchDate string) (*models.Deposit, error) {
	var deposit models.Deposit
	if err := r.db.Where("txn_id = ? AND fetch_date = ?", txnID, fetchDate).First(&deposit).Error; err != nil {
		return nil, err
	}
	return &deposit, nil
}

func (r *Repository) FindDepositsByDate(fetchDate string) ([]models.Deposit, error) {
	deposits := make([]models.Deposit, 0)
	if err := r.db.Where("fetch_date = ?", fetchDate).Order("id ASC").Find(&deposits).Error; err != nil {
		return nil, err
	}
	return deposits, nil
}

// LatestFetchDate reports the greatest fetch date in the store. ok is false
// when the store holds no deposits.
func (r *Repository) LatestFetchDate() (date string, ok bool, err error) {
	var dates []string
	if err := r.db.Model(&models.Deposit{}).
		Order("fetch_date DESC").
		Limit(1).
		Pluck("fetch_date", &dates).Error; err != nil {
		return "", false, err
	}
	if len(dates) == 0 {
		return "", false, nil
	}
	return dates[0], true, nil
}

func (r *Repository) DistinctFetchDates() ([]string, error) {
	dates := make([]string, 0)
	if err := r.db.Model(&models.Deposit{}).
		Distinct("fetch_date").
		Order("fetch_date DESC").
		Pluck("fetch_date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *Repository) CountDepositsByDate() ([]models.DateCount, error) {
	counts := make([]models.DateCount, 0)
	if err := r.db.Model(&models.Deposit{}).
		Select("fetch_date, COUNT(*) AS count").
		Group("fetch_date").
		Order("fetch_date DESC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *Repository) DeleteDepositsByDate(fetchDate string) (int64, error) {
	result := r.db.Where("fetch_date = ?", fetchDate).Delete(&models.Deposit{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
