package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  transport: "stdio"
biochem:
  source: "local"
  dir: "./data/biochem"
template:
  source: "local"
  dir: "./data/templates"
session:
  max_models: 100
  max_media: 50
log:
  level: "info"
  format: "json"
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		os.Setenv(k, v)
	}
	t.Cleanup(func() {
		for k := range vars {
			os.Unsetenv(k)
		}
	})
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, "./data/biochem", cfg.Biochem.Dir)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load("non_existent_config.yaml")
	assert.Error(t, err)
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "invalid_yaml: [")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	invalidConfig := `
server:
  transport: "carrier-pigeon"
`
	path := createTempConfigFile(t, invalidConfig)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	setEnvVars(t, map[string]string{
		"GEMFLUX_BIOCHEM_DIR": "/env/biochem",
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/biochem", cfg.Biochem.Dir)
}

func TestLoad_EnvOverride_NestedKey(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	setEnvVars(t, map[string]string{
		"GEMFLUX_LOG_LEVEL": "debug",
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DefaultValues(t *testing.T) {
	minimalYAML := `
biochem:
  dir: "./data/biochem"
template:
  dir: "./data/templates"
`
	path := createTempConfigFile(t, minimalYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultServerTransport, cfg.Server.Transport)
	assert.Equal(t, DefaultMaxModels, cfg.Session.MaxModels)
}

func TestLoadFromEnv_NoFile(t *testing.T) {
	setEnvVars(t, map[string]string{
		"GEMFLUX_BIOCHEM_DIR":  "/env/biochem",
		"GEMFLUX_TEMPLATE_DIR": "/env/templates",
	})

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/env/biochem", cfg.Biochem.Dir)
	assert.Equal(t, "/env/templates", cfg.Template.Dir)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestMustLoad_Success(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	assert.NotPanics(t, func() {
		MustLoad(path)
	})
}

func TestMustLoad_Panic(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad("non_existent.yaml")
	})
}
