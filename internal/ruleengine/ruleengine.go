// Package ruleengine centralizes the deterministic, template-derived
// interpretation/next-steps rules attached to tool responses (§5.C8):
// named threshold expressions evaluated against a fixed variable bag,
// rather than scattered if-chains, without making the rules AI-generated
// prose.
package ruleengine

import (
	"fmt"

	"github.com/Knetic/govaluate"
)

// Rule pairs a named boolean threshold expression with the template string
// substituted when it evaluates true.
type Rule struct {
	Name       string
	Expression string
	Template   string
}

// RuleSet is a compiled, ordered list of Rules sharing one variable-bag
// shape. Rules are tried in order; the first whose expression evaluates
// true wins — the idiomatic way to express "else if" chains with
// govaluate, grounded on taipm-go-deep-agent's math tool use of the same
// library for expression evaluation.
type RuleSet struct {
	name  string
	rules []compiledRule
}

type compiledRule struct {
	Rule
	expr *govaluate.EvaluableExpression
}

// New compiles every rule's expression once so Match is cheap to call per
// request. It returns an error naming the first rule whose expression
// fails to parse.
func New(name string, rules []Rule) (*RuleSet, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		expr, err := govaluate.NewEvaluableExpression(r.Expression)
		if err != nil {
			return nil, fmt.Errorf("ruleengine: %s: rule %q: invalid expression %q: %w", name, r.Name, r.Expression, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, expr: expr})
	}
	return &RuleSet{name: name, rules: compiled}, nil
}

// Match evaluates rules in order against vars and returns the name and
// template of the first rule whose expression is true. ok is false when no
// rule matched — a RuleSet should always end in a catch-all `true` rule, so
// callers may treat a false ok as a construction bug rather than bad input.
func (rs *RuleSet) Match(vars map[string]interface{}) (name, template string, ok bool, err error) {
	for _, r := range rs.rules {
		result, evalErr := r.expr.Evaluate(vars)
		if evalErr != nil {
			return "", "", false, fmt.Errorf("ruleengine: %s: rule %q: %w", rs.name, r.Name, evalErr)
		}
		matched, isBool := result.(bool)
		if !isBool {
			return "", "", false, fmt.Errorf("ruleengine: %s: rule %q evaluated to a non-boolean result", rs.name, r.Name)
		}
		if matched {
			return r.Name, r.Template, true, nil
		}
	}
	return "", "", false, nil
}

// MustNew is New, panicking on error. Intended for package-level RuleSets
// built from literal rule tables whose expressions are known-valid at
// compile time — analogous to regexp.MustCompile.
func MustNew(name string, rules []Rule) *RuleSet {
	rs, err := New(name, rules)
	if err != nil {
		panic(err)
	}
	return rs
}
