package construction

import (
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/ruleengine"
)

// Interpretation is the deterministic, template-derived summary attached to
// a build_model response: model-quality category, annotation status, and a
// readiness verdict for the next pipeline stage (§5.C8).
type Interpretation struct {
	ModelQuality     string `json:"model_quality"`     // comprehensive | moderate | minimal
	AnnotationStatus string `json:"annotation_status"` // annotated | unannotated
	Readiness        string `json:"readiness"`
}

// Model-quality category thresholds (reaction count), chosen to bracket
// typical draft genome-scale reconstructions before gapfilling.
const (
	comprehensiveReactionThreshold = 1000
	moderateReactionThreshold      = 400
)

// modelQualityRules classifies a freshly built draft model by reaction
// count. Rules are tried in order; the first match wins.
var modelQualityRules = ruleengine.MustNew("model_quality", []ruleengine.Rule{
	{Name: "comprehensive", Expression: "reaction_count >= comprehensive_threshold", Template: "comprehensive"},
	{Name: "moderate", Expression: "reaction_count >= moderate_threshold", Template: "moderate"},
	{Name: "minimal", Expression: "true", Template: "minimal"},
})

// readinessRules flags the one condition that blocks every downstream
// tool (run_fba, gapfill_model's genome-scale stage): a missing biomass
// reaction.
var readinessRules = ruleengine.MustNew("readiness", []ruleengine.Rule{
	{Name: "no_biomass", Expression: "!has_biomass", Template: "not ready for flux balance analysis: no biomass reaction identified"},
	{Name: "ready", Expression: "true", Template: "ready for gapfilling"},
})

// Interpret builds the interpretation block attached to a freshly built
// draft model. annotated reports whether functional annotation ran before
// construction.
func Interpret(stats model.Stats, annotated bool) Interpretation {
	var out Interpretation

	_, quality, ok, err := modelQualityRules.Match(map[string]interface{}{
		"reaction_count":          float64(stats.ReactionCount),
		"comprehensive_threshold": float64(comprehensiveReactionThreshold),
		"moderate_threshold":      float64(moderateReactionThreshold),
	})
	if err != nil || !ok {
		quality = "minimal"
	}
	out.ModelQuality = quality

	out.AnnotationStatus = "unannotated"
	if annotated {
		out.AnnotationStatus = "annotated"
	}

	_, readiness, ok, err := readinessRules.Match(map[string]interface{}{
		"has_biomass": stats.BiomassReaction != "",
	})
	if err != nil || !ok {
		readiness = "ready for gapfilling"
	}
	out.Readiness = readiness

	return out
}

// NextSteps returns the ordered suggested follow-up tool calls for a freshly
// built draft model.
func NextSteps(stats model.Stats) []string {
	steps := []string{"Run gapfill_model to patch pathway gaps before flux balance analysis."}
	if stats.BiomassReaction == "" {
		return append([]string{"No biomass reaction was identified; run_fba will fail until one is added."}, steps...)
	}
	return steps
}
