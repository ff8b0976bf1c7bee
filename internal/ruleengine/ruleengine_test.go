package ruleengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/ruleengine"
)

func growthRuleSet(t *testing.T) *ruleengine.RuleSet {
	t.Helper()
	rs, err := ruleengine.New("growth", []ruleengine.Rule{
		{Name: "no_growth", Expression: `status != "optimal" || objective_value <= 1e-9`, Template: "no_growth"},
		{Name: "fast", Expression: "objective_value >= 0.5", Template: "fast"},
		{Name: "moderate", Expression: "objective_value >= 0.1", Template: "moderate"},
		{Name: "slow", Expression: "true", Template: "slow"},
	})
	require.NoError(t, err)
	return rs
}

func TestRuleSet_Match_FirstMatchWins(t *testing.T) {
	rs := growthRuleSet(t)

	tests := []struct {
		name     string
		vars     map[string]interface{}
		wantName string
	}{
		{"infeasible", map[string]interface{}{"status": "infeasible", "objective_value": 0.8}, "no_growth"},
		{"near_zero_objective", map[string]interface{}{"status": "optimal", "objective_value": 1e-12}, "no_growth"},
		{"fast", map[string]interface{}{"status": "optimal", "objective_value": 0.8}, "fast"},
		{"moderate", map[string]interface{}{"status": "optimal", "objective_value": 0.2}, "moderate"},
		{"slow", map[string]interface{}{"status": "optimal", "objective_value": 0.05}, "slow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, template, ok, err := rs.Match(tt.vars)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantName, template)
		})
	}
}

func TestRuleSet_Match_NoRuleMatches(t *testing.T) {
	rs, err := ruleengine.New("empty", nil)
	require.NoError(t, err)

	name, template, ok, err := rs.Match(map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, name)
	assert.Empty(t, template)
}

func TestRuleSet_Match_UndefinedVariableErrors(t *testing.T) {
	rs := growthRuleSet(t)

	_, _, _, err := rs.Match(map[string]interface{}{})
	assert.Error(t, err)
}

func TestNew_InvalidExpression(t *testing.T) {
	_, err := ruleengine.New("broken", []ruleengine.Rule{
		{Name: "bad", Expression: "((("},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestMustNew_PanicsOnInvalidExpression(t *testing.T) {
	assert.Panics(t, func() {
		ruleengine.MustNew("broken", []ruleengine.Rule{
			{Name: "bad", Expression: "((("},
		})
	})
}

func TestMustNew_ValidExpressionDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		ruleengine.MustNew("ok", []ruleengine.Rule{
			{Name: "always", Expression: "true", Template: "always"},
		})
	})
}
