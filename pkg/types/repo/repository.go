package repo

import (
	"depositrecon/internal/models"
)

type Repository interface {
	// Deposits
	UpsertDeposit(deposit *models.Deposit) error
	GetDepositByKey(txnID, fetchDate string) (*models.Deposit, error)
	FindDepositsByDate(fetchDate string) ([]models.Deposit, error)
	LatestFetchDate() (date string, ok bool, err error)
	DistinctFetchDates() ([]string, error)
	CountDepositsByDate() ([]models.DateCount, error)
	DeleteDepositsByDate(fetchDate string) (int64, error)

	// Fetch runs
	CreateFetchRun(run *models.FetchRun) error
	UpdateFetchRun(run *models.FetchRun) error
	GetFetchRunByID(id string) (*models.FetchRun, error)
	ListFetchRuns(limit int) ([]models.FetchRun, error)
	ListFetchRunsByDate(fetchDate string) ([]models.FetchRun, error)
}
