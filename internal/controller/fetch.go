package controller

import (
	"net/http"
	"strconv"
	"time"

	"depositrecon/internal/models"
	"depositrecon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type FetchRequest struct {
	Date string `json:"date" binding:"required"`
}

type FetchResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type FetchStatusResponse struct {
	Fetching bool              `json:"fetching"`
	NextRun  *time.Time        `json:"next_run,omitempty"`
	LastRuns []models.FetchRun `json:"last_runs"`
}

// TriggerFetch godoc
// @Summary Fetch a date on demand
// @Description Pulls the deposits of one date from the settlement API and merges them into the store
// @Tags fetch
// @Accept json
// @Produce json
// @Param request body FetchRequest true "Date to fetch"
// @Success 200 {object} FetchResponse
// @Failure 400 {object} APIError
// @Failure 500 {object} APIError
// @Failure 502 {object} APIError
// @Failure 503 {object} APIError
// @Failure 504 {object} APIError
// @Router /api/fetch [post]
func (c *Controller) TriggerFetch(ctx *gin.Context) {
	if c.fetcher == nil {
		serviceUnavailable(ctx, "Fetch service not available")
		return
	}

	var req FetchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestWithDetails(ctx, "Invalid request body", "expected {\"date\": \"YYYY-MM-DD\"}")
		return
	}

	count, err := c.fetcher.FetchAndStore(ctx.Request.Context(), req.Date, models.FetchTriggerManual)
	if err != nil {
		c.fetchError(ctx, req.Date, err)
		return
	}

	ctx.JSON(http.StatusOK, FetchResponse{Date: req.Date, Count: count})
}

func (c *Controller) fetchError(ctx *gin.Context, date string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		badRequestWithDetails(ctx, "Invalid date", "expected YYYY-MM-DD")
	case errors.Is(err, service.ErrUpstreamTimeout):
		errorResponse(ctx, http.StatusGatewayTimeout, "Settlement API did not respond in time")
	case errors.Is(err, service.ErrUpstream):
		errorResponse(ctx, http.StatusBadGateway, "Settlement API returned an error")
	case errors.Is(err, service.ErrStore):
		internalError(ctx, "Failed to store deposits")
	default:
		c.logger.Error("unexpected fetch error", "date", date, "error", err)
		internalError(ctx, "Fetch failed")
	}
}

// FetchStatus godoc
// @Summary Fetch status
// @Description Whether a fetch is running, when the next scheduled fetch fires and the latest run per date. With date, last_runs holds only that date's latest run.
// @Tags fetch
// @Produce json
// @Param date query string false "Only the latest run of this fetch date (YYYY-MM-DD)"
// @Success 200 {object} FetchStatusResponse
// @Failure 400 {object} APIError
// @Failure 503 {object} APIError
// @Router /api/fetch/status [get]
func (c *Controller) FetchStatus(ctx *gin.Context) {
	if c.fetcher == nil {
		serviceUnavailable(ctx, "Fetch service not available")
		return
	}

	resp := FetchStatusResponse{
		Fetching: c.fetcher.IsFetching(),
	}
	if date := ctx.Query("date"); date != "" {
		if !validDate(date) {
			badRequestWithDetails(ctx, "Invalid date", "expected YYYY-MM-DD")
			return
		}
		resp.LastRuns = []models.FetchRun{}
		if run, ok := c.fetcher.LastRun(date); ok {
			resp.LastRuns = append(resp.LastRuns, run)
		}
	} else {
		resp.LastRuns = c.fetcher.LastRuns()
	}
	if next := c.fetcher.NextRun(); !next.IsZero() {
		resp.NextRun = &next
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListFetchRuns godoc
// @Summary Fetch log
// @Description Persisted fetch runs, newest first
// @Tags fetch
// @Produce json
// @Param limit query int false "Maximum number of runs (default 20, max 100)"
// @Param date query string false "Only runs for this fetch date (YYYY-MM-DD)"
// @Success 200 {array} models.FetchRun
// @Failure 400 {object} APIError
// @Failure 500 {object} APIError
// @Router /api/fetch/runs [get]
func (c *Controller) ListFetchRuns(ctx *gin.Context) {
	if date := ctx.Query("date"); date != "" {
		if !validDate(date) {
			badRequestWithDetails(ctx, "Invalid date", "expected YYYY-MM-DD")
			return
		}
		runs, err := c.repo.ListFetchRunsByDate(date)
		if err != nil {
			c.logger.Error("failed to list fetch runs", "date", date, "error", err)
			internalError(ctx, "Failed to list fetch runs")
			return
		}
		ctx.JSON(http.StatusOK, runs)
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(ctx, "Invalid limit")
			return
		}
		limit = n
	}

	runs, err := c.repo.ListFetchRuns(limit)
	if err != nil {
		c.logger.Error("failed to list fetch runs", "error", err)
		internalError(ctx, "Failed to list fetch runs")
		return
	}
	ctx.JSON(http.StatusOK, runs)
}

// GetFetchRun godoc
// @Summary One fetch run
// @Description A persisted fetch run by its ID
// @Tags fetch
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.FetchRun
// @Failure 404 {object} APIError
// @Failure 500 {object} APIError
// @Router /api/fetch/runs/{id} [get]
func (c *Controller) GetFetchRun(ctx *gin.Context) {
	id := ctx.Param("id")
	run, err := c.repo.GetFetchRunByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Fetch run not found")
			return
		}
		c.logger.Error("failed to load fetch run", "id", id, "error", err)
		internalError(ctx, "Failed to load fetch run")
		return
	}
	ctx.JSON(http.StatusOK, run)
}
