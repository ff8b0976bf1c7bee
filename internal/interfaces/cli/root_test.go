package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Creation(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "gemfluxmcp", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Contains(t, cmd.Version, Version)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestNewRootCommand_PersistentFlags(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	flags := []struct {
		name      string
		shorthand string
	}{
		{"config", "c"},
		{"log-level", ""},
		{"timeout", ""},
	}

	for _, f := range flags {
		t.Run(f.name, func(t *testing.T) {
			flag := pf.Lookup(f.name)
			require.NotNil(t, flag, "flag %q should be registered", f.name)
			if f.shorthand != "" {
				assert.Equal(t, f.shorthand, flag.Shorthand)
			}
		})
	}
}

func TestNewRootCommand_SubcommandsMounted(t *testing.T) {
	cmd := NewRootCommand()

	expectedSubs := []string{"serve", "validate-config", "version"}
	subNames := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		subNames = append(subNames, sub.Name())
	}

	for _, expected := range expectedSubs {
		assert.Contains(t, subNames, expected, "subcommand %q should be mounted", expected)
	}
}

func TestNewRootCommand_DefaultFlagValues(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	configPath, err := pf.GetString("config")
	require.NoError(t, err)
	assert.Empty(t, configPath)

	logLevel, err := pf.GetString("log-level")
	require.NoError(t, err)
	assert.Empty(t, logLevel)

	timeout, err := pf.GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, timeout)
}

func TestLoadConfig_ExplicitPathNotFound(t *testing.T) {
	opts := &RootOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}

	_, err := loadConfig(opts)
	assert.Error(t, err)
}

func TestLoadConfig_FromEnvDefaults(t *testing.T) {
	opts := &RootOptions{}

	cfg, err := loadConfig(opts)
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadConfig_LogLevelOverride(t *testing.T) {
	opts := &RootOptions{LogLevel: "DEBUG"}

	cfg, err := loadConfig(opts)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestBuildLogger_Succeeds(t *testing.T) {
	opts := &RootOptions{}
	cfg, err := loadConfig(opts)
	require.NoError(t, err)

	logger, err := buildLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestExecute_HelpFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"gemfluxmcp", "--help"}

	rootCmd := NewRootCommand()
	err := rootCmd.Execute()
	assert.NoError(t, err)
}

func TestExecute_VersionFlag(t *testing.T) {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs([]string{"--version"})
	err := rootCmd.Execute()
	assert.NoError(t, err)
}
