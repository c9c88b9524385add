package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"depositrecon/internal/repo"
	"depositrecon/pkg/integrations/wmPubsub"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *repo.Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repository, err := repo.New(db)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate())
	return repository
}

func TestNew_Validation(t *testing.T) {
	_, err := New(WithRepository(newTestRepo(t)))
	assert.ErrorIs(t, err, ErrNilEngine)

	_, err = New(WithEngine(gin.New()))
	assert.ErrorIs(t, err, ErrNilRepository)
}

func TestSetup_RegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runs := wmPubsub.New(
		wmPubsub.WithContext(ctx),
		wmPubsub.WithLogger(logger),
		wmPubsub.WithTopic("fetch_runs"),
		wmPubsub.WithChannel(make(chan []byte, 1)),
	)

	engine := gin.New()
	h, err := New(
		WithEngine(engine),
		WithRepository(newTestRepo(t)),
		WithRunListener(runs),
		WithLogger(logger),
		WithSwagger(true),
	)
	require.NoError(t, err)
	require.NoError(t, h.Setup())

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, route := range []string{
		"GET /health",
		"GET /swagger/*any",
		"GET /api/reports",
		"GET /api/reports/:date",
		"GET /api/deposits",
		"GET /api/deposits/:date/:txn_id",
		"POST /api/fetch",
		"GET /api/fetch/status",
		"GET /api/fetch/runs",
		"GET /api/fetch/runs/:id",
		"GET /api/fetch/stream",
		"GET /api/history",
		"DELETE /api/history/:date",
	} {
		assert.True(t, registered[route], route)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetup_WithoutOptionalRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	h, err := New(WithEngine(engine), WithRepository(newTestRepo(t)))
	require.NoError(t, err)
	require.NoError(t, h.Setup())

	for _, r := range engine.Routes() {
		assert.NotEqual(t, "/api/fetch/stream", r.Path)
		assert.NotEqual(t, "/swagger/*any", r.Path)
	}
}
