package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	fs.String("format", "yaml", "")
	fs.String("strings", "", "")
	fs.String("metrics-addr", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FORMWIZARD_CONFIG", "")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, Config{Format: "yaml"}, cfg)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formwizard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nstrings: file.yaml\nmetrics_addr: :9000\n"), 0o644))
	t.Setenv("FORMWIZARD_METRICS_ADDR", ":9100")

	cfg, err := LoadConfig(path, newFlags(t, "--strings", "flag.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format, "file overrides the default")
	assert.Equal(t, ":9100", cfg.MetricsAddr, "env overrides the file")
	assert.Equal(t, "flag.yaml", cfg.Strings, "flags override everything")
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("FORMWIZARD_CONFIG", "")
	_, err = LoadConfig("", newFlags(t, "--format", "toml"))
	assert.ErrorContains(t, err, `unsupported format "toml"`)
}
