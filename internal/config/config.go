// Package config defines all configuration structures for gem-flux-mcp.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds MCP transport and admin-surface tunables.
type ServerConfig struct {
	Transport       string        `mapstructure:"transport"` // "stdio" | "http"
	HTTPPort        int           `mapstructure:"http_port"`
	AdminPort       int           `mapstructure:"admin_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BiochemConfig locates the compound/reaction TSV pair the biochemistry
// index is built from.
type BiochemConfig struct {
	Source    string `mapstructure:"source"` // "local" | "minio"
	Dir       string `mapstructure:"dir"`
	CacheMode string `mapstructure:"cache_mode"` // "none" | "redis"
}

// TemplateConfig locates reconstruction template JSON files and the ATP
// test-media bundle.
type TemplateConfig struct {
	Source string `mapstructure:"source"` // "local" | "minio"
	Dir    string `mapstructure:"dir"`
}

// SessionConfig holds the in-memory catalog's soft caps.
type SessionConfig struct {
	MaxModels int `mapstructure:"max_models"`
	MaxMedia  int `mapstructure:"max_media"`
}

// AnnotatorConfig configures the optional external functional-annotation
// HTTP collaborator and its resilience wrapper.
type AnnotatorConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	BaseURL            string        `mapstructure:"base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxRetries         int           `mapstructure:"max_retries"`
	BreakerMaxRequests uint32        `mapstructure:"breaker_max_requests"`
	BreakerInterval    time.Duration `mapstructure:"breaker_interval"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string `mapstructure:"format"` // "json" | "console"
	EnableCaller     bool   `mapstructure:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace"`
}

// MetricsConfig configures the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RedisConfig backs the optional biochem-index warm cache (§8.1).
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig backs the optional domain event bus (§8.2).
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Neo4jConfig backs the optional pathway graph mirror (§8.3).
type Neo4jConfig struct {
	Enabled               bool          `mapstructure:"enabled"`
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
	Database              string        `mapstructure:"database"`
}

// GRPCConfig backs the optional admin gRPC introspection facade (§8.4).
type GRPCConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	// Debug registers the gRPC reflection service, handy for poking the
	// introspection facade with grpcurl during local development.
	Debug bool `mapstructure:"debug"`
}

// MinIOConfig backs the optional object-store template/biochem source (§8.5).
type MinIOConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// OpenSearchConfig backs the optional fuzzy search-suggestion fallback (§8.6).
type OpenSearchConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	Addresses   []string `mapstructure:"addresses"`
	User        string   `mapstructure:"user"`
	Password    string   `mapstructure:"password"`
	IndexPrefix string   `mapstructure:"index_prefix"`
}

// MilvusConfig backs the optional near-miss vector-suggestion fallback (§8.7).
type MilvusConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	Addr             string `mapstructure:"addr"`
	CollectionPrefix string `mapstructure:"collection_prefix"`
	DefaultTopK      int    `mapstructure:"default_top_k"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for gem-flux-mcp. Every
// infrastructure component and application service reads its settings from
// the relevant sub-struct.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Biochem    BiochemConfig    `mapstructure:"biochem"`
	Template   TemplateConfig   `mapstructure:"template"`
	Session    SessionConfig    `mapstructure:"session"`
	Annotator  AnnotatorConfig  `mapstructure:"annotator"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Neo4j      Neo4jConfig      `mapstructure:"neo4j"`
	GRPC       GRPCConfig       `mapstructure:"grpc"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	OpenSearch OpenSearchConfig `mapstructure:"opensearch"`
	Milvus     MilvusConfig     `mapstructure:"milvus"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config. It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application. Optional C10 extension
// sections are validated only when their Enabled flag is set — their
// settings are never required to be present.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("config: server.transport %q is invalid; expected stdio|http", c.Server.Transport)
	}
	if c.Server.Transport == "http" && (c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535) {
		return fmt.Errorf("config: server.http_port %d is out of range [1, 65535]", c.Server.HTTPPort)
	}

	if c.Biochem.Dir == "" && c.Biochem.Source == "local" {
		return fmt.Errorf("config: biochem.dir is required when biochem.source is local")
	}
	if c.Template.Dir == "" && c.Template.Source == "local" {
		return fmt.Errorf("config: template.dir is required when template.source is local")
	}

	if c.Session.MaxModels < 1 {
		return fmt.Errorf("config: session.max_models must be ≥ 1, got %d", c.Session.MaxModels)
	}
	if c.Session.MaxMedia < 1 {
		return fmt.Errorf("config: session.max_media must be ≥ 1, got %d", c.Session.MaxMedia)
	}

	if c.Annotator.Enabled && c.Annotator.BaseURL == "" {
		return fmt.Errorf("config: annotator.base_url is required when annotator.enabled is true")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis.enabled is true")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must contain at least one broker when kafka.enabled is true")
	}
	if c.Neo4j.Enabled && c.Neo4j.URI == "" {
		return fmt.Errorf("config: neo4j.uri is required when neo4j.enabled is true")
	}
	if c.MinIO.Enabled && c.MinIO.Endpoint == "" {
		return fmt.Errorf("config: minio.endpoint is required when minio.enabled is true")
	}
	if c.OpenSearch.Enabled && len(c.OpenSearch.Addresses) == 0 {
		return fmt.Errorf("config: opensearch.addresses must contain at least one address when opensearch.enabled is true")
	}
	if c.Milvus.Enabled && c.Milvus.Addr == "" {
		return fmt.Errorf("config: milvus.addr is required when milvus.enabled is true")
	}
	if c.GRPC.Enabled && (c.GRPC.Port < 1 || c.GRPC.Port > 65535) {
		return fmt.Errorf("config: grpc.port %d is out of range [1, 65535] when grpc.enabled is true", c.GRPC.Port)
	}

	return nil
}
