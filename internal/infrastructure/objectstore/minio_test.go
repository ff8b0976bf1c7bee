package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

func TestNewMinIOSource_UnreachableEndpointWrapsAsObjectStoreError(t *testing.T) {
	cfg := config.MinIOConfig{
		Endpoint:  "127.0.0.1:1",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "gem-flux-reference-data",
		UseSSL:    false,
	}

	_, err := NewMinIOSource(cfg, logging.NewNopLogger())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeObjectStoreError, apperrors.GetCode(err))
}
