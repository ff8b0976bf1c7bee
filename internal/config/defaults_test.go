package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerTransport, cfg.Server.Transport)
	assert.Equal(t, DefaultServerHTTPPort, cfg.Server.HTTPPort)
	assert.Equal(t, DefaultAdminPort, cfg.Server.AdminPort)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, DefaultBiochemSource, cfg.Biochem.Source)
	assert.Equal(t, DefaultBiochemDir, cfg.Biochem.Dir)
	assert.Equal(t, "none", cfg.Biochem.CacheMode)

	assert.Equal(t, DefaultTemplateSource, cfg.Template.Source)
	assert.Equal(t, DefaultTemplateDir, cfg.Template.Dir)

	assert.Equal(t, DefaultMaxModels, cfg.Session.MaxModels)
	assert.Equal(t, DefaultMaxMedia, cfg.Session.MaxMedia)

	assert.Equal(t, 30*time.Second, cfg.Annotator.Timeout)
	assert.Equal(t, 3, cfg.Annotator.MaxRetries)
	assert.Equal(t, uint32(5), cfg.Annotator.BreakerMaxRequests)

	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)

	assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.HTTPPort = 9999
	cfg.Biochem.Dir = "/custom/biochem"

	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.HTTPPort)
	assert.Equal(t, "/custom/biochem", cfg.Biochem.Dir)
	assert.Equal(t, DefaultServerTransport, cfg.Server.Transport) // still defaulted
}

func TestApplyDefaults_OptionalExtensionsLeftUnsetWhenDisabled(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.Neo4j.URI)
	assert.Empty(t, cfg.MinIO.Endpoint)
	assert.Empty(t, cfg.Milvus.Addr)
}

func TestApplyDefaults_OptionalExtensionsDefaultedWhenEnabled(t *testing.T) {
	cfg := &Config{}
	cfg.Redis.Enabled = true
	cfg.Kafka.Enabled = true
	cfg.Neo4j.Enabled = true
	cfg.MinIO.Enabled = true
	cfg.Milvus.Enabled = true

	ApplyDefaults(cfg)

	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultNeo4jURI, cfg.Neo4j.URI)
	assert.Equal(t, DefaultMinIOEndpoint, cfg.MinIO.Endpoint)
	assert.Equal(t, DefaultMilvusAddr, cfg.Milvus.Addr)
}

func TestApplyDefaults_PreserveSliceValues(t *testing.T) {
	cfg := &Config{}
	cfg.Kafka.Enabled = true
	brokers := []string{"kafka-1:9092", "kafka-2:9092"}
	cfg.Kafka.Brokers = brokers

	ApplyDefaults(cfg)

	assert.Equal(t, brokers, cfg.Kafka.Brokers)
}

func TestApplyDefaults_PreserveDurationValues(t *testing.T) {
	cfg := &Config{}
	timeout := 5 * time.Minute
	cfg.Annotator.Timeout = timeout

	ApplyDefaults(cfg)

	assert.Equal(t, timeout, cfg.Annotator.Timeout)
}
