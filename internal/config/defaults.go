// Package config provides configuration loading, defaults, and validation
// for gem-flux-mcp.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerTransport = "stdio"
	DefaultServerHTTPPort  = 8080
	DefaultAdminPort       = 9090

	DefaultBiochemSource = "local"
	DefaultBiochemDir    = "./data/biochem"

	DefaultTemplateSource = "local"
	DefaultTemplateDir    = "./data/templates"

	DefaultMaxModels = 100
	DefaultMaxMedia  = 50

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsPath = "/metrics"

	DefaultRedisAddr    = "localhost:6379"
	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaTopic   = "gemflux.events"
	DefaultNeo4jURI     = "bolt://localhost:7687"
	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMilvusAddr   = "localhost:19530"
)

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults fills zero-value fields in cfg with well-known defaults. It
// must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the gem-flux-mcp
// default. Fields already set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = DefaultServerTransport
	}
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = DefaultServerHTTPPort
	}
	if cfg.Server.AdminPort == 0 {
		cfg.Server.AdminPort = DefaultAdminPort
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// ── Biochem / Template ───────────────────────────────────────────────
	if cfg.Biochem.Source == "" {
		cfg.Biochem.Source = DefaultBiochemSource
	}
	if cfg.Biochem.Dir == "" {
		cfg.Biochem.Dir = DefaultBiochemDir
	}
	if cfg.Biochem.CacheMode == "" {
		cfg.Biochem.CacheMode = "none"
	}
	if cfg.Template.Source == "" {
		cfg.Template.Source = DefaultTemplateSource
	}
	if cfg.Template.Dir == "" {
		cfg.Template.Dir = DefaultTemplateDir
	}

	// ── Session ───────────────────────────────────────────────────────────
	if cfg.Session.MaxModels == 0 {
		cfg.Session.MaxModels = DefaultMaxModels
	}
	if cfg.Session.MaxMedia == 0 {
		cfg.Session.MaxMedia = DefaultMaxMedia
	}

	// ── Annotator ─────────────────────────────────────────────────────────
	if cfg.Annotator.Timeout == 0 {
		cfg.Annotator.Timeout = 30 * time.Second
	}
	if cfg.Annotator.MaxRetries == 0 {
		cfg.Annotator.MaxRetries = 3
	}
	if cfg.Annotator.BreakerMaxRequests == 0 {
		cfg.Annotator.BreakerMaxRequests = 5
	}
	if cfg.Annotator.BreakerInterval == 0 {
		cfg.Annotator.BreakerInterval = 60 * time.Second
	}
	if cfg.Annotator.BreakerTimeout == 0 {
		cfg.Annotator.BreakerTimeout = 30 * time.Second
	}

	// ── Log ───────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Optional extensions: only defaulted when enabled ─────────────────
	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.Enabled && cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = 24 * time.Hour
	}
	if cfg.Redis.Enabled && cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "gemflux:"
	}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Enabled && cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Neo4j.Enabled && cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = DefaultNeo4jURI
	}
	if cfg.Neo4j.Enabled && cfg.Neo4j.MaxConnectionPoolSize == 0 {
		cfg.Neo4j.MaxConnectionPoolSize = 50
	}
	if cfg.GRPC.Enabled && cfg.GRPC.Host == "" {
		cfg.GRPC.Host = "0.0.0.0"
	}
	if cfg.GRPC.Enabled && cfg.GRPC.Port == 0 {
		cfg.GRPC.Port = 9091
	}
	if cfg.MinIO.Enabled && cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.Milvus.Enabled && cfg.Milvus.Addr == "" {
		cfg.Milvus.Addr = DefaultMilvusAddr
	}
	if cfg.Milvus.Enabled && cfg.Milvus.DefaultTopK == 0 {
		cfg.Milvus.DefaultTopK = 5
	}
}
