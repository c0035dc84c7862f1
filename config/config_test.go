package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"

	dotenv "p256k.lol/env"
	"p256k.lol/lol"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(dotenv.Env{})
	require.NoError(t, err)
	require.Empty(t, c.Engine)
}

func TestNewKeepsLogLevel(t *testing.T) {
	prev := lol.Level.Load()
	defer lol.Level.Store(prev)
	t.Cleanup(xdg.Reload)
	t.Setenv("P256K_ENV_FILE", "")
	t.Setenv("P256K_LOG_LEVEL", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	lol.SetLogLevel("trace")
	c, err := New()
	require.NoError(t, err)
	require.Empty(t, c.LogLevel)
	require.Equal(t, int32(lol.Trace), lol.Level.Load())
}

func TestLoadFromSource(t *testing.T) {
	c, err := Load(dotenv.Env{"P256K_LOG_LEVEL": "trace", "P256K_ENGINE": "btcec"})
	require.NoError(t, err)
	require.Equal(t, "trace", c.LogLevel)
	require.Equal(t, "btcec", c.Engine)
}

func TestNewWithEnvFile(t *testing.T) {
	prev := lol.Level.Load()
	defer lol.Level.Store(prev)
	path := filepath.Join(t.TempDir(), "p256k.env")
	require.NoError(t, os.WriteFile(path,
		[]byte("export P256K_LOG_LEVEL=warn\nexport P256K_ENGINE=btcec\n"), 0600))
	t.Setenv("P256K_ENV_FILE", path)
	c, err := New()
	require.NoError(t, err)
	require.Equal(t, "warn", c.LogLevel)
	require.Equal(t, "btcec", c.Engine)
	require.Equal(t, path, c.EnvFile)
	require.Equal(t, int32(lol.Warn), lol.Level.Load())
}

func TestNewWithXDGEnvFile(t *testing.T) {
	prev := lol.Level.Load()
	defer lol.Level.Store(prev)
	dir := t.TempDir()
	path := filepath.Join(dir, EnvFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("P256K_LOG_LEVEL=error\n"), 0600))
	t.Cleanup(xdg.Reload)
	t.Setenv("P256K_ENV_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	c, err := New()
	require.NoError(t, err)
	require.Equal(t, path, c.EnvFile)
	require.Equal(t, "error", c.LogLevel)
}

func TestPrintEnvRoundTrip(t *testing.T) {
	c := &C{LogLevel: "debug", Engine: "btcec"}
	buf := new(bytes.Buffer)
	c.PrintEnv(buf)
	require.True(t, strings.HasPrefix(buf.String(), "#!/usr/bin/env bash\n"))
	e := dotenv.Env{}
	e.Parse(buf.String())
	c2, err := Load(e)
	require.NoError(t, err)
	require.Equal(t, c.LogLevel, c2.LogLevel)
	require.Equal(t, c.Engine, c2.Engine)
}

func TestUsage(t *testing.T) {
	buf := new(bytes.Buffer)
	Usage(buf)
	require.Contains(t, buf.String(), "P256K_ENGINE")
}
