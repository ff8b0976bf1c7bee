package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

func testStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.New(logging.NewNopLogger(), session.DefaultLimits)
	require.NoError(t, store.StoreMedia(&session.StoredMedia{
		ID: "media-glc", Media: media.New("glucose-minimal", "e0", -10), Predefined: true,
	}))
	return store
}

func TestListModels_EmptyCatalogReturnsEmptySlice(t *testing.T) {
	srv := NewSessionIntrospectionServer(testStore(t))
	out, err := srv.ListModels(context.Background(), &ListModelsRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Models)
}

func TestListMedia_ReportsPredefinedEntry(t *testing.T) {
	srv := NewSessionIntrospectionServer(testStore(t))
	out, err := srv.ListMedia(context.Background(), &ListMediaRequest{})
	require.NoError(t, err)
	require.Len(t, out.Media, 1)
	assert.Equal(t, "media-glc", out.Media[0].ID)
	assert.Equal(t, "glucose-minimal", out.Media[0].Name)
	assert.True(t, out.Media[0].Predefined)
}

func TestHealthCheck_ReportsCatalogCounts(t *testing.T) {
	srv := NewSessionIntrospectionServer(testStore(t))
	out, err := srv.HealthCheck(context.Background(), &HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, "SERVING", out.Status)
	assert.Equal(t, 0, out.ModelCount)
	assert.Equal(t, 1, out.MediaCount)
}
