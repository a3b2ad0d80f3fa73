package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
aws:
  region: us-west-2
  endpoint: http://localhost:9000
metadata_tool:
  command: parquet-tools
  args: [meta]
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "us-west-2", cfg.AWS.Region)
	require.Equal(t, "http://localhost:9000", cfg.AWS.Endpoint)
	require.Equal(t, "parquet-tools", cfg.MetadataTool.Command)
	require.Equal(t, []string{"meta"}, cfg.MetadataTool.Args)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aws: ["), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
