package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"depositrecon/internal/config"
	"depositrecon/internal/service"
	"depositrecon/pkg/types/settlement"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettlement struct {
	status   int
	deposits []map[string]any
	requests []settlement.Request
}

func (f *fakeSettlement) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req settlement.Request
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.requests = append(f.requests, req)

	if f.status != http.StatusOK {
		w.WriteHeader(f.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"deposits": f.deposits})
}

func newFakeSettlement(t *testing.T) (*fakeSettlement, string) {
	f := &fakeSettlement{
		status: http.StatusOK,
		deposits: []map[string]any{
			{"txn_id": "T1", "fetch_date": "2025-01-10", "deposit_amount": "100", "bank_icon": "A", "deposit_type": "Auto"},
			{"txn_id": "T2", "fetch_date": "2025-01-10", "deposit_amount": "50", "bank_icon": "A", "deposit_type": "Manual"},
			{"txn_id": "T3", "fetch_date": "2025-01-10", "deposit_amount": 30, "bank_icon": "A", "status": "ตัดเครดิต"},
		},
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

// writeConfig isolates a CLI run from the process environment and returns
// the path of a config pointing at a fresh database.
func writeConfig(t *testing.T, mutate func(*config.Config)) string {
	for _, key := range []string{
		"DB_PATH", "APP_PORT", "SETTLEMENT_BASE_URL", "SETTLEMENT_USERNAME",
		"SETTLEMENT_PASSWORD", "SETTLEMENT_PREFIX", "FETCH_HOUR", "FETCH_MINUTE", "FETCH_TIMEZONE",
	} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(dir, "recon.db")
	cfg.Settlement.Username = "user"
	cfg.Settlement.Password = "secret"
	cfg.Settlement.Prefix = "luv88"
	cfg.Settlement.Timeout = 5 * time.Second
	if mutate != nil {
		mutate(cfg)
	}

	path := filepath.Join(dir, "depositrecon.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", configPath, "--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestCLI_FetchReportHistoryPurge(t *testing.T) {
	fake, url := newFakeSettlement(t)
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Settlement.BaseURL = url
	})

	out, err := runCLI(t, cfgPath, "fetch", "--date", "2025-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "fetched 3 deposits for 2025-01-10")
	require.Len(t, fake.requests, 1)
	assert.Equal(t, settlement.Request{Username: "user", Password: "secret", Prefix: "luv88", Date: "2025-01-10"}, fake.requests[0])

	out, err = runCLI(t, cfgPath, "fetch", "--date", "2025-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "fetched 3 deposits")

	out, err = runCLI(t, cfgPath, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetch date: 2025-01-10 (3 records)")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "30.00")
	assert.Contains(t, out, "120.00")

	out, err = runCLI(t, cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-10")
	assert.Contains(t, out, "3")

	out, err = runCLI(t, cfgPath, "purge", "--date", "2025-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 3 deposits for 2025-01-10")

	out, err = runCLI(t, cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no deposits stored")
}

func TestCLI_FetchUpstreamError(t *testing.T) {
	fake, url := newFakeSettlement(t)
	fake.status = http.StatusBadGateway
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Settlement.BaseURL = url
	})

	_, err := runCLI(t, cfgPath, "fetch", "--date", "2025-01-10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUpstream))

	out, err := runCLI(t, cfgPath, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "no deposits stored")
}

func TestCLI_FetchWithoutBaseURL(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	_, err := runCLI(t, cfgPath, "fetch", "--date", "2025-01-10")
	assert.ErrorContains(t, err, "base_url")
}

func TestCLI_InvalidDates(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	_, err := runCLI(t, cfgPath, "report", "--date", "10/01/2025")
	assert.Error(t, err)

	_, err = runCLI(t, cfgPath, "purge", "--date", "all")
	assert.Error(t, err)

	_, err = runCLI(t, cfgPath, "purge")
	assert.Error(t, err)
}

func TestCLI_InvalidConfig(t *testing.T) {
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Schedule.Hour = 25
	})

	_, err := runCLI(t, cfgPath, "history")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestCLI_DeductionMarkersFromConfig(t *testing.T) {
	fake, url := newFakeSettlement(t)
	fake.deposits = []map[string]any{
		{"txn_id": "T1", "fetch_date": "2025-01-10", "deposit_amount": "100", "bank_icon": "A"},
		{"txn_id": "T2", "fetch_date": "2025-01-10", "deposit_amount": "40", "bank_icon": "A", "remark": "REFUND"},
	}
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Settlement.BaseURL = url
		c.Report.DeductionMarkers = []string{"REFUND"}
	})

	_, err := runCLI(t, cfgPath, "fetch", "--date", "2025-01-10")
	require.NoError(t, err)

	out, err := runCLI(t, cfgPath, "report", "--date", "2025-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "60.00")
}

func TestCLI_ConfigInit(t *testing.T) {
	writeConfig(t, nil)
	path := filepath.Join(t.TempDir(), "etc", "depositrecon.yaml")

	out, err := runCLI(t, path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = runCLI(t, path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = runCLI(t, path, "config", "init", "--force")
	assert.NoError(t, err)

	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "recon.db"))
	out, err = runCLI(t, path, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no deposits stored")
}

func TestCLI_ConfigInitDefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	_, err := os.Stat(defaultConfigFile)
	assert.NoError(t, err)
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, url := newFakeSettlement(t)
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Settlement.BaseURL = url
		c.Server.Port = "0"
	})

	opts := &globalOptions{configPath: cfgPath, envFile: filepath.Join(t.TempDir(), "missing.env")}
	require.NoError(t, opts.load(&bytes.Buffer{}))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, opts, false)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
