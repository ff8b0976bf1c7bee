// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"not found", errors.CodeModelNotFound, "model draftA.draft not found"},
		{"invalid param", errors.CodeInvalidParam, "compound id must match cpd\\d{5}"},
		{"rate limit", errors.CodeRateLimit, "too many requests"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail, "Detail should be empty for bare New()")
			assert.Nil(t, ae.Cause, "Cause should be nil for bare New()")
		})
	}
}

func TestNew_StackFieldNeverPanics(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeInternal, "test")
	require.NotNil(t, ae)
	_ = ae.Stack
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	require.Nil(t, errors.Wrap(nil, errors.CodeInternal, "wrapped"))
}

func TestWrap_PreservesOriginalCodeWhenUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeSolverFailure, "LP solve timed out")
	outer := errors.Wrap(inner, errors.CodeUnknown, "gapfill round 2 failed")

	require.NotNil(t, outer)
	assert.Equal(t, errors.CodeSolverFailure, outer.Code)
	assert.Same(t, inner, outer.Cause)
}

func TestWrap_OverridesCodeWhenExplicit(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeSolverFailure, "LP solve timed out")
	outer := errors.Wrap(inner, errors.CodeGapfillExhausted, "no feasible gapfill solution")

	assert.Equal(t, errors.CodeGapfillExhausted, outer.Code)
}

func TestErrorString_FormatsWithAndWithoutDetail(t *testing.T) {
	t.Parallel()

	bare := errors.New(errors.CodeInvalidParam, "bad input")
	assert.True(t, strings.HasPrefix(bare.Error(), "[INVALID_PARAM(100)] bad input"))

	withDetail := bare.WithDetail("field=compound_id")
	assert.True(t, strings.HasSuffix(withDetail.Error(), "field=compound_id"))
}

func TestUnwrap_EnablesStdlibErrorsIs(t *testing.T) {
	t.Parallel()

	sentinel := stderrors.New("sentinel")
	wrapped := errors.Wrap(sentinel, errors.CodeInternal, "wrapped")

	assert.True(t, stderrors.Is(wrapped, sentinel))
}

func TestIsCode_TraversesChain(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeModelNotFound, "not found")
	outer := fmt.Errorf("context: %w", inner)

	assert.True(t, errors.IsCode(outer, errors.CodeModelNotFound))
	assert.False(t, errors.IsCode(outer, errors.CodeMediaNotFound))
}

func TestWithDetail_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
}

func TestWithCause_ClonesAndSetsCause(t *testing.T) {
	t.Parallel()

	base := errors.New(errors.CodeInternal, "base")
	cause := stderrors.New("cause")
	withCause := base.WithCause(cause)

	assert.Same(t, cause, withCause.Cause)
	assert.Nil(t, base.Cause, "original must not be mutated")
}
