// Package eventbus publishes domain lifecycle events (model construction,
// gapfill completion, FBA runs) onto an optional Kafka topic so external
// systems — audit trails, downstream pipelines, usage dashboards — can react
// to tool activity without polling the session store (§8.2).
package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// Event kinds published by the application layer. The payload shape is
// intentionally flat and JSON-serializable so external consumers never need
// this module's Go types.
const (
	EventModelConstructed = "model.constructed"
	EventGapfillCompleted = "gapfill.completed"
	EventFBACompleted     = "fba.completed"
)

// Event is the wire envelope for every published domain event. Key is the
// Kafka partition key — a model or media id, so that every event touching
// the same entity lands on the same partition in order.
type Event struct {
	Kind    string      `json:"kind"`
	Key     string      `json:"key"`
	Payload interface{} `json:"payload"`
}

// Publisher publishes Events onto a Kafka topic. The disabled Publisher
// returned by NewNop is safe to call Publish on — it's a silent no-op, since the event
// bus is strictly an optional add-on per config.KafkaConfig.Enabled.
type Publisher struct {
	writer  *kafka.Writer
	topic   string
	logger  logging.Logger
	enabled bool
}

// New constructs a Publisher writing to cfg.Topic across cfg.Brokers.
// Kafka connectivity is not verified eagerly — kafka-go's Writer dials
// lazily on first write — matching the teacher's producer construction,
// which likewise defers connection errors to the first Publish call.
func New(cfg config.KafkaConfig, logger logging.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		topic:   cfg.Topic,
		logger:  logger,
		enabled: true,
	}
}

// NewNop returns a Publisher whose Publish is a no-op, used when
// config.KafkaConfig.Enabled is false.
func NewNop() *Publisher { return &Publisher{} }

// Publish sends one event of kind keyed by key (a model or media id)
// carrying payload. Publish failures are returned wrapped as
// apperrors.CodeEventBusError so callers can decide whether to
// log-and-continue (the recommended treatment, since a tool call having
// already succeeded should not fail retroactively because the audit event
// didn't make it onto the bus) or propagate.
func (p *Publisher) Publish(ctx context.Context, kind, key string, payload interface{}) error {
	if !p.enabled {
		return nil
	}

	evt := Event{Kind: kind, Key: key, Payload: payload}
	body, err := json.Marshal(evt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeEventBusError, "failed to marshal event").WithDetail(kind)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: body,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return apperrors.Wrap(err, apperrors.CodeEventBusError, "failed to publish event").WithDetail(kind)
	}

	p.logger.Debug("published domain event",
		logging.String("kind", kind), logging.String("key", key), logging.String("topic", p.topic))
	return nil
}

// Close releases the underlying Kafka writer's connections.
func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}
	return p.writer.Close()
}
