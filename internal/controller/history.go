package controller

import (
	"net/http"

	"depositrecon/internal/models"

	"github.com/gin-gonic/gin"
)

type HistoryResponse struct {
	Dates []models.DateCount `json:"dates"`
}

type PurgeResponse struct {
	Date    string `json:"date"`
	Deleted int64  `json:"deleted"`
}

// ListHistory godoc
// @Summary Stored fetch dates
// @Description Every date with stored deposits, newest first, with its record count
// @Tags history
// @Produce json
// @Success 200 {object} HistoryResponse
// @Failure 500 {object} APIError
// @Router /api/history [get]
func (c *Controller) ListHistory(ctx *gin.Context) {
	counts, err := c.repo.CountDepositsByDate()
	if err != nil {
		c.logger.Error("failed to list history", "error", err)
		internalError(ctx, "Failed to list history")
		return
	}
	ctx.JSON(http.StatusOK, HistoryResponse{Dates: counts})
}

// PurgeHistory godoc
// @Summary Purge a fetch date
// @Description Deletes every stored deposit of one date. Fetch runs are kept.
// @Tags history
// @Produce json
// @Param date path string true "Fetch date (YYYY-MM-DD)"
// @Success 200 {object} PurgeResponse
// @Failure 400 {object} APIError
// @Failure 500 {object} APIError
// @Router /api/history/{date} [delete]
func (c *Controller) PurgeHistory(ctx *gin.Context) {
	date := ctx.Param("date")
	if !validDate(date) {
		badRequestWithDetails(ctx, "Invalid date", "expected YYYY-MM-DD")
		return
	}

	deleted, err := c.repo.DeleteDepositsByDate(date)
	if err != nil {
		c.logger.Error("failed to purge date", "date", date, "error", err)
		internalError(ctx, "Failed to purge date")
		return
	}
	c.logger.Info("purged deposits", "date", date, "deleted", deleted)
	ctx.JSON(http.StatusOK, PurgeResponse{Date: date, Deleted: deleted})
}
