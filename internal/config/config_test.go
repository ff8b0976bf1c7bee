package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newValidConfig() *Config {
	return &Config{
		Server:  ServerConfig{Transport: "stdio", ShutdownTimeout: 10 * time.Second},
		Biochem: BiochemConfig{Source: "local", Dir: "./data/biochem"},
		Template: TemplateConfig{Source: "local", Dir: "./data/templates"},
		Session: SessionConfig{MaxModels: 100, MaxMedia: 50},
		Log:     LogConfig{Level: "info", Format: "json"},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := newValidConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_InvalidTransport(t *testing.T) {
	cfg := newValidConfig()
	cfg.Server.Transport = "carrier-pigeon"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_HTTPTransportRequiresPort(t *testing.T) {
	cfg := newValidConfig()
	cfg.Server.Transport = "http"
	cfg.Server.HTTPPort = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_MissingBiochemDir(t *testing.T) {
	cfg := newValidConfig()
	cfg.Biochem.Dir = ""
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	cfg := newValidConfig()
	cfg.Log.Level = "invalid"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_NonPositiveSessionCaps(t *testing.T) {
	cfg := newValidConfig()
	cfg.Session.MaxModels = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_AnnotatorEnabledRequiresBaseURL(t *testing.T) {
	cfg := newValidConfig()
	cfg.Annotator.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Annotator.BaseURL = "http://annotator.internal"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_OptionalExtensionsIgnoredWhenDisabled(t *testing.T) {
	cfg := newValidConfig()
	// Every optional section left zero-valued and disabled must not fail
	// validation.
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RedisEnabledRequiresAddr(t *testing.T) {
	cfg := newValidConfig()
	cfg.Redis.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_KafkaEnabledRequiresBrokers(t *testing.T) {
	cfg := newValidConfig()
	cfg.Kafka.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Kafka.Brokers = []string{"localhost:9092"}
	assert.NoError(t, cfg.Validate())
}
