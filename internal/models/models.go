package models

import "time"

const (
	DepositTypeAuto   = "Auto"
	DepositTypeManual = "Manual"
)

const (
	FetchTriggerScheduled = "scheduled"
	FetchTriggerManual    = "manual"

	FetchStatusRunning = "running"
	FetchStatusSuccess = "success"
	FetchStatusFailed  = "failed"
)

// Deposit is one settled or attempted deposit pulled from the settlement API.
// TxnID and FetchDate together form the natural key.
type Deposit struct {
	ID            int64     `json:"id"             gorm:"primaryKey"`
	TxnID         string    `json:"txn_id"         gorm:"not null;uniqueIndex:idx_deposit_natural_key"`
	FetchDate     string    `json:"fetch_date"     gorm:"not null;uniqueIndex:idx_deposit_natural_key;index"`
	DepositAmount string    `json:"deposit_amount"`
	BankIcon      string    `json:"bank_icon"      gorm:"index"`
	Status        string    `json:"status"`
	Remark        string    `json:"remark"`
	DepositType   string    `json:"deposit_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FetchRun records a single attempt to pull a day's deposits.
type FetchRun struct {
	ID         string    `json:"id"          gorm:"primaryKey"`
	FetchDate  string    `json:"fetch_date"  gorm:"index"`
	Trigger    string    `json:"trigger"`
	Status     string    `json:"status"`
	Ingested   int       `json:"ingested"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// DateCount is one entry of the history listing.
type DateCount struct {
	FetchDate string `json:"fetch_date"`
	Count     int64  `json:"count"`
}

func (Deposit) TableName() string {
	return "deposits"
}

func (FetchRun) TableName() string {
	return "fetch_runs"
}
