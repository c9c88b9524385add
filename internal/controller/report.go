package controller

import (
	"net/http"
	"time"

	"depositrecon/internal/models"
	"depositrecon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type DepositListResponse struct {
	FetchDate string           `json:"fetch_date"`
	Deposits  []models.Deposit `json:"deposits"`
}

// GetLatestReport godoc
// @Summary Summary of the latest fetch date
// @Description Per-bank totals, deductions and nets for the most recent date in the store. An empty store gives an empty summary.
// @Tags reports
// @Produce json
// @Success 200 {object} summary.DailySummary
// @Failure 500 {object} APIError
// @Router /api/reports [get]
func (c *Controller) GetLatestReport(ctx *gin.Context) {
	date, ok, err := c.repo.LatestFetchDate()
	if err != nil {
		c.logger.Error("failed to read latest fetch date", "error", err)
		internalError(ctx, "Failed to load report")
		return
	}
	if !ok {
		ctx.JSON(http.StatusOK, c.aggregator.Aggregate("", nil))
		return
	}
	c.writeReport(ctx, date)
}

// GetReport godoc
// @Summary Summary of a fetch date
// @Description Per-bank totals, deductions and nets for one date
// @Tags reports
// @Produce json
// @Param date path string true "Fetch date (YYYY-MM-DD)"
// @Success 200 {object} summary.DailySummary
// @Failure 400 {object} APIError
// @Failure 500 {object} APIError
// @Router /api/reports/{date} [get]
func (c *Controller) GetReport(ctx *gin.Context) {
	date := ctx.Param("date")
	if !validDate(date) {
		badRequestWithDetails(ctx, "Invalid date", "expected YYYY-MM-DD")
		return
	}
	c.writeReport(ctx, date)
}

func (c *Controller) writeReport(ctx *gin.Context, date string) {
	deposits, err := c.repo.FindDepositsByDate(date)
	if err != nil {
		c.logger.Error("failed to load deposits", "date", date, "error", err)
		internalError(ctx, "Failed to load report")
		return
	}
	ctx.JSON(http.StatusOK, c.aggregator.Aggregate(date, deposits))
}

// ListDeposits godoc
// @Summary Raw deposits of a fetch date
// @Description Stored deposit records of the given date, or of the latest date when omitted
// @Tags deposits
// @Produce json
// @Param date query string false "Fetch date (YYYY-MM-DD)"
// @Success 200 {object} DepositListResponse
// @Failure 400 {object} APIError
// @Failure 500 {object} APIError
// @Router /api/deposits [get]
func (c *Controller) ListDeposits(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		latest, ok, err := c.repo.LatestFetchDate()
		if err != nil {
			c.logger.Error("failed to read latest fetch date", "error", err)
			internalError(ctx, "Failed to load deposits")
			return
		}
		if !ok {
			ctx.JSON(http.StatusOK, DepositListResponse{Deposits: []models.Deposit{}})
			return
		}
		date = latest
	} else if !validDate(date) {
		badRequestWithDetails(ctx, "Invalid date", "expected YYYY-MM-DD")
		return
	}

	deposits, err := c.repo.FindDepositsByDate(date)
	if err != nil {
		c.logger.Error("failed to load deposits", "date", date, "error", err)
		internalError(ctx, "Failed to load deposits")
		return
	}
	ctx.JSON(http.StatusOK, DepositListResponse{FetchDate: date, Deposits: deposits})
}

// GetDeposit godoc
// @Summary One stored deposit
// @Description The deposit stored under its natural key (fetch date, transaction ID)
// @Tags deposits
// @Produce json
// @Param date path string true "Fetch date (YYYY-MM-DD)"
// @Param txn_id path string true "Transaction ID"
// @Success 200 {object} models.Deposit
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Failure 500 {object} APIError
// @Router /api/deposits/{date}/{txn_id} [get]
func (c *Controller) GetDeposit(ctx *gin.Context) {
	date, txnID := ctx.Param("date"), ctx.Param("txn_id")
	if !validDate(date) {
		badRequestWithDetails(ctx, "Invalid date", "expected YYYY-MM-DD")
		return
	}

	deposit, err := c.repo.GetDepositByKey(txnID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Deposit not found")
			return
		}
		c.logger.Error("failed to load deposit", "date", date, "txn_id", txnID, "error", err)
		internalError(ctx, "Failed to load deposit")
		return
	}
	ctx.JSON(http.StatusOK, deposit)
}

func validDate(date string) bool {
	_, err := time.Parse(service.DateLayout, date)
	return err == nil
}
