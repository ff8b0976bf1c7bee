package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	domainconstruction "github.com/jplfaria/gem-flux-mcp/internal/domain/construction"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// AnnotatorClientConfig configures AnnotatorClient's HTTP endpoint, retry
// budget, and circuit breaker, mirroring internal/config.AnnotatorConfig.
type AnnotatorClientConfig struct {
	BaseURL            string
	Timeout            time.Duration
	MaxRetries         int
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
}

// AnnotatorClient is the default construction.Annotator implementation: an
// HTTP client against a RAST-like functional-annotation service, wrapped in
// a circuit breaker and an exponential-backoff retry loop. A failure here
// must surface as a library error — it never falls back to silently
// skipping annotation.
type AnnotatorClient struct {
	httpClient *http.Client
	cfg        AnnotatorClientConfig
	breaker    *gobreaker.CircuitBreaker
	logger     logging.Logger
}

// annotateRequest/annotateResponse are the wire shapes exchanged with the
// annotation service: protein id -> sequence in, protein id -> assigned
// functional role(s) out. Roles aren't surfaced by Genome today, so the
// client only uses the response to confirm the call succeeded; a richer
// Genome type would attach them per protein.
type annotateRequest struct {
	Proteins map[string]string `json:"proteins"`
}

type annotateResponse struct {
	Roles map[string][]string `json:"roles"`
}

// NewAnnotatorClient constructs an AnnotatorClient with its own circuit
// breaker, named after the configured endpoint for observability.
func NewAnnotatorClient(cfg AnnotatorClientConfig, logger logging.Logger) *AnnotatorClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "annotator:" + cfg.BaseURL,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("annotator circuit breaker state change",
				logging.String("breaker", name),
				logging.String("from", from.String()),
				logging.String("to", to.String()),
			)
		},
	})
	return &AnnotatorClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		breaker:    breaker,
		logger:     logger,
	}
}

// Annotate posts genome.Proteins to the configured endpoint, retrying
// transient failures with exponential backoff inside the circuit breaker's
// call, and returns a library_error-tagged error on exhaustion or an open
// breaker.
func (c *AnnotatorClient) Annotate(ctx context.Context, genome *domainconstruction.Genome) error {
	body, err := json.Marshal(annotateRequest{Proteins: genome.Proteins})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeAnnotatorFailure, "failed to encode annotation request")
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.postWithRetry(ctx, body)
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeAnnotatorFailure, "functional annotation request failed")
	}
	return nil
}

func (c *AnnotatorClient) postWithRetry(ctx context.Context, body []byte) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.MaxRetries)), ctx)

	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/annotate", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err // transient: retry
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("annotator returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("annotator rejected request with status %d", resp.StatusCode))
		}

		var out annotateResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode annotator response: %w", err))
		}
		return nil
	}, policy)
}
