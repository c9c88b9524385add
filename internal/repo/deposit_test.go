package repo

import (
	"fmt"
	"sync"
	"testing"

	"depositrecon/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeposit(txnID, fetchDate, amount string) *models.Deposit {
	return &models.Deposit{
		TxnID:         txnID,
		FetchDate:     fetchDate,
		DepositAmount: amount,
		BankIcon:      "KBANK",
		Status:        "สำเร็จ",
		DepositType:   models.DepositTypeAuto,
	}
}

func TestDepositRepository_UpsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	require.NoError(t, repository.UpsertDeposit(newDeposit("T1", "2025-01-10", "100.00")))
	first, err := repository.GetDepositByKey("T1", "2025-01-10")
	require.NoError(t, err)

	require.NoError(t, repository.UpsertDeposit(newDeposit("T1", "2025-01-10", "100.00")))
	second, err := repository.GetDepositByKey("T1", "2025-01-10")
	require.NoError(t, err)

	deposits, err := repository.FindDepositsByDate("2025-01-10")
	require.NoError(t, err)
	require.Len(t, deposits, 1)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TxnID, second.TxnID)
	assert.Equal(t, first.DepositAmount, second.DepositAmount)
	assert.Equal(t, first.BankIcon, second.BankIcon)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Remark, second.Remark)
	assert.Equal(t, first.DepositType, second.DepositType)
}

func TestDepositRepository_UpsertLeavesCallerRecord(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	require.NoError(t, repository.UpsertDeposit(newDeposit("T0", "2025-01-10", "1.00")))

	deposit := newDeposit("T1", "2025-01-10", "100.00")
	deposit.ID = 99
	before := *deposit
	require.NoError(t, repository.UpsertDeposit(deposit))
	assert.Equal(t, before, *deposit)

	stored, err := repository.GetDepositByKey("T1", "2025-01-10")
	require.NoError(t, err)
	assert.NotEqual(t, int64(99), stored.ID)

	require.NoError(t, repository.UpsertDeposit(newDeposit("T1", "2025-01-10", "100.00")))
	again, err := repository.GetDepositByKey("T1", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, again.ID)
	assert.Equal(t, stored.CreatedAt.Unix(), again.CreatedAt.Unix())
	assert.False(t, again.UpdatedAt.Before(stored.UpdatedAt))
}

func TestDepositRepository_UpsertReplacesFields(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	require.NoError(t, repository.UpsertDeposit(newDeposit("T1", "2025-01-10", "100.00")))

	updated := &models.Deposit{
		TxnID:         "T1",
		FetchDate:     "2025-01-10",
		DepositAmount: "250.00",
		BankIcon:      "SCB",
		Remark:        "ตัดเครดิต",
		DepositType:   models.DepositTypeManual,
	}
	require.NoError(t, repository.UpsertDeposit(updated))

	got, err := repository.GetDepositByKey("T1", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, "250.00", got.DepositAmount)
	assert.Equal(t, "SCB", got.BankIcon)
	assert.Equal(t, "", got.Status)
	assert.Equal(t, "ตัดเครดิต", got.Remark)
	assert.Equal(t, models.DepositTypeManual, got.DepositType)

	deposits, err := repository.FindDepositsByDate("2025-01-10")
	require.NoError(t, err)
	assert.Len(t, deposits, 1)
}

func TestDepositRepository_SameTxnDifferentDates(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	require.NoError(t, repository.UpsertDeposit(newDeposit("T1", "2025-01-10", "100.00")))
	require.NoError(t, repository.UpsertDeposit(newDeposit("T1", "2025-01-11", "100.00")))

	first, err := repository.FindDepositsByDate("2025-01-10")
	require.NoError(t, err)
	second, err := repository.FindDepositsByDate("2025-01-11")
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestDepositRepository_FindByDateEmpty(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	deposits, err := repository.FindDepositsByDate("2025-01-10")
	require.NoError(t, err)
	assert.NotNil(t, deposits)
	assert.Empty(t, deposits)
}

func TestDepositRepository_LatestAndDistinctDates(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	_, ok, err := repository.LatestFetchDate()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repository.UpsertDeposit(newDeposit("T1", "2025-01-09", "1")))
	require.NoError(t, repository.UpsertDeposit(newDeposit("T2", "2025-01-11", "1")))
	require.NoError(t, repository.UpsertDeposit(newDeposit("T3", "2025-01-10", "1")))
	require.NoError(t, repository.UpsertDeposit(newDeposit("T4", "2025-01-11", "1")))

	latest, ok, err := repository.LatestFetchDate()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2025-01-11", latest)

	dates, err := repository.DistinctFetchDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-11", "2025-01-10", "2025-01-09"}, dates)

	counts, err := repository.CountDepositsByDate()
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, models.DateCount{FetchDate: "2025-01-11", Count: 2}, counts[0])
	assert.Equal(t, models.DateCount{FetchDate: "2025-01-09", Count: 1}, counts[2])
}

func TestDepositRepository_DeleteByDate(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	require.NoError(t, repository.UpsertDeposit(newDeposit("T1", "2025-01-10", "1")))
	require.NoError(t, repository.UpsertDeposit(newDeposit("T2", "2025-01-10", "2")))
	require.NoError(t, repository.UpsertDeposit(newDeposit("T3", "2025-01-11", "3")))

	deleted, err := repository.DeleteDepositsByDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deposits, err := repository.FindDepositsByDate("2025-01-10")
	require.NoError(t, err)
	assert.Empty(t, deposits)

	dates, err := repository.DistinctFetchDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-11"}, dates)

	deleted, err = repository.DeleteDepositsByDate("2025-01-10")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestDepositRepository_ConcurrentUpserts(t *testing.T) {
	repository, err := New(setupTestDB(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			txnID := fmt.Sprintf("T%d", i%10)
			assert.NoError(t, repository.UpsertDeposit(newDeposit(txnID, "2025-01-10", "10")))
		}(i)
	}
	wg.Wait()

	deposits, err := repository.FindDepositsByDate("2025-01-10")
	require.NoError(t, err)
	assert.Len(t, deposits, 10)
}
