package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"model not found", errors.NotFound("model draftA.draft not found"), true},
		{"specific model code", errors.New(errors.CodeModelNotFound, "x"), true},
		{"media not found", errors.New(errors.CodeMediaNotFound, "x"), true},
		{"wrapped not found", fmt.Errorf("ctx: %w", errors.New(errors.CodeCompoundNotFound, "x")), true},
		{"invalid param is not not-found", errors.InvalidParam("bad"), false},
		{"infeasible is not not-found", errors.Infeasible("no solution"), false},
		{"plain error", fmt.Errorf("boom"), false},
		{"nil error", nil, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, errors.IsNotFound(tc.err))
		})
	}
}

func TestIsInfeasible(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsInfeasible(errors.New(errors.CodeGapfillExhausted, "x")))
	assert.True(t, errors.IsInfeasible(errors.New(errors.CodeATPCorrectionFail, "x")))
	assert.False(t, errors.IsInfeasible(errors.NotFound("x")))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(fmt.Errorf("plain")))
	assert.Equal(t, errors.CodeModelNotFound, errors.GetCode(errors.New(errors.CodeModelNotFound, "x")))
}

func TestTaxonomy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "server_error", errors.Taxonomy(fmt.Errorf("plain")))
	assert.Equal(t, "not_found_error", errors.Taxonomy(errors.NotFound("x")))
}
