package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

func TestMedia_Set_ValidBounds(t *testing.T) {
	m := media.New("glucose_minimal", "e0", 10)
	require.NoError(t, m.Set("cpd00027_e0", -10, 1000))
	assert.Equal(t, media.Bounds{Lower: -10, Upper: 1000}, m.Compounds["cpd00027_e0"])
}

func TestMedia_Set_RejectsInvertedBounds(t *testing.T) {
	m := media.New("glucose_minimal", "e0", 10)
	err := m.Set("cpd00027_e0", 100, -100)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidMediaSet, apperrors.GetCode(err))
}

func TestMedia_SetDefaultUptake(t *testing.T) {
	m := media.New("glucose_minimal", "e0", 10)
	m.SetDefaultUptake("cpd00027_e0")
	assert.Equal(t, media.Bounds{Lower: -10, Upper: 1000}, m.Compounds["cpd00027_e0"])
}

func TestMedia_CompartmentBounds(t *testing.T) {
	m := media.New("glucose_minimal", "e0", 10)
	require.NoError(t, m.Set("cpd00027_e0", -10, 1000))
	require.NoError(t, m.Set("cpd00001_e0", -1000, 1000))

	bounds := m.CompartmentBounds()
	assert.Equal(t, [2]float64{-10, 1000}, bounds["cpd00027_e0"])
	assert.Equal(t, [2]float64{-1000, 1000}, bounds["cpd00001_e0"])
	assert.Len(t, bounds, 2)
}
