package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "bitesdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /data/bites
source: s3
s3:
  bucket: bites-exports
  prefix: daily
generator:
  seed: 7
  start_date: "2024-02-01"
  cities: Dubai,Ajman
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/bites", cfg.DataDir)
	assert.Equal(t, SourceS3, cfg.Source)
	assert.Equal(t, "bites-exports", cfg.S3.Bucket)
	assert.Equal(t, "me-central-1", cfg.S3.Region)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), cfg.Generator.StartDate)
	assert.Equal(t, []string{"Dubai", "Ajman"}, cfg.Generator.Cities)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
}

func TestLoadConfigDefaultsAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BITESDASH_OUTPUT_FORMAT", "parquet")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, SourceLocal, cfg.Source)
	assert.Equal(t, "parquet", cfg.Output.Format)
	assert.Equal(t, 5000, cfg.Generator.Orders)
	assert.Equal(t, []string{"Dubai", "Abu Dhabi", "Sharjah"}, cfg.Generator.Cities)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
