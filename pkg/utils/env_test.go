package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnv_Existing(t *testing.T) {
	t.Setenv("FOO_BAR", "qux")
	val := GetEnv("FOO_BAR", "baz")
	require.Equal(t, "qux", val)
}

func TestGetEnv_Default(t *testing.T) {
	os.Unsetenv("FOO_BAR")
	val := GetEnv("FOO_BAR", "baz")
	require.Equal(t, "baz", val)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("FETCH_HOUR", "7")
	require.Equal(t, 7, GetEnvInt("FETCH_HOUR", 0))

	t.Setenv("FETCH_HOUR", "seven")
	require.Equal(t, 3, GetEnvInt("FETCH_HOUR", 3))

	os.Unsetenv("FETCH_MINUTE")
	require.Equal(t, 5, GetEnvInt("FETCH_MINUTE", 5))
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# settlement\nexport SETTLEMENT_PREFIX=luv88\nSETTLEMENT_BASE_URL=\"http://node:3000\"\nAPP_PORT=9999\nbroken line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("APP_PORT", "8080")
	t.Setenv("SETTLEMENT_PREFIX", "")
	os.Unsetenv("SETTLEMENT_PREFIX")
	t.Setenv("SETTLEMENT_BASE_URL", "")
	os.Unsetenv("SETTLEMENT_BASE_URL")

	require.NoError(t, LoadEnv(path))
	require.Equal(t, "luv88", os.Getenv("SETTLEMENT_PREFIX"))
	require.Equal(t, "http://node:3000", os.Getenv("SETTLEMENT_BASE_URL"))
	require.Equal(t, "8080", os.Getenv("APP_PORT"))
}

func TestLoadEnv_MissingFile(t *testing.T) {
	require.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}
