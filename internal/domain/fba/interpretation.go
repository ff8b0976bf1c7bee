package fba

import (
	"strings"

	"github.com/jplfaria/gem-flux-mcp/internal/ruleengine"
)

// Interpretation is the deterministic, template-derived summary attached to
// a successful FBA response. Every field is computed from fixed thresholds
// and string rules, never free-form generation — see the source
// specification's note that these rules are "not AI output".
type Interpretation struct {
	GrowthRate     float64 `json:"growth_rate"`
	Category       string  `json:"category"`         // fast | moderate | slow | no_growth
	MetabolismHint string  `json:"metabolism_hint"` // aerobic | anaerobic | unknown
	CarbonSource   string  `json:"carbon_source,omitempty"`
	ModelStatus    string  `json:"model_status"`
}

// Growth-rate category thresholds (1/h), chosen to bracket typical
// genome-scale model growth rates.
const (
	fastGrowthThreshold     = 0.5
	moderateGrowthThreshold = 0.1
)

// oxygenExchangeID is the conventional ModelSEED oxygen exchange reaction.
const oxygenExchangeID = "EX_cpd00007_e0"

// oxygenUptakeThreshold is the minimal magnitude of oxygen uptake flux
// treated as "significant" for the aerobic/anaerobic hint.
const oxygenUptakeThreshold = 1e-3

// growthCategoryRules classifies a completed FBA result's objective value
// into a growth category. Rules are tried in order; the first match wins.
var growthCategoryRules = ruleengine.MustNew("growth_category", []ruleengine.Rule{
	{Name: "no_growth", Expression: `status != "optimal" || objective_value <= 1e-9`, Template: "no_growth"},
	{Name: "fast", Expression: "objective_value >= fast_threshold", Template: "fast"},
	{Name: "moderate", Expression: "objective_value >= moderate_threshold", Template: "moderate"},
	{Name: "slow", Expression: "true", Template: "slow"},
})

// modelStatusRules maps a growth category to the human-readable model_status
// string attached to the response.
var modelStatusRules = ruleengine.MustNew("model_status", []ruleengine.Rule{
	{Name: "no_growth", Expression: `category == "no_growth"`, Template: "model cannot produce biomass under this medium"},
	{Name: "slow", Expression: `category == "slow"`, Template: "model grows slowly; consider gapfilling against a richer medium"},
	{Name: "default", Expression: "true", Template: "model grows under this medium"},
})

// Interpret builds the response's interpretation block from a completed
// Result. carbonContaining reports whether a compound id is known to
// contain carbon, used to identify the dominant carbon source among uptake
// fluxes.
func Interpret(r Result, carbonContaining func(exchangeID string) bool) Interpretation {
	out := Interpretation{GrowthRate: r.ObjectiveValue}

	_, category, ok, err := growthCategoryRules.Match(map[string]interface{}{
		"status":             string(r.Status),
		"objective_value":    r.ObjectiveValue,
		"fast_threshold":     fastGrowthThreshold,
		"moderate_threshold": moderateGrowthThreshold,
	})
	if err != nil || !ok {
		category = "slow"
	}
	out.Category = category

	out.MetabolismHint = "unknown"
	if flux, ok := r.Fluxes[oxygenExchangeID]; ok {
		if flux < -oxygenUptakeThreshold {
			out.MetabolismHint = "aerobic"
		} else {
			out.MetabolismHint = "anaerobic"
		}
	}

	var bestID string
	var bestMagnitude float64
	for _, u := range r.UptakeFluxes {
		if !carbonContaining(u.ReactionID) {
			continue
		}
		mag := -u.Flux
		if mag > bestMagnitude {
			bestMagnitude = mag
			bestID = u.ReactionID
		}
	}
	if bestID != "" {
		out.CarbonSource = strings.TrimPrefix(bestID, "EX_")
	}

	_, status, ok, err := modelStatusRules.Match(map[string]interface{}{"category": out.Category})
	if err != nil || !ok {
		status = "model grows under this medium"
	}
	out.ModelStatus = status

	return out
}
