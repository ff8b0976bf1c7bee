package template

// DefaultSpecs is the minimum configured template set every deployment loads
// at startup: a Gram-negative template and a core template, both critical —
// startup aborts if either fails to load. Operators extending the registry
// with additional (optionally non-critical) templates build their own Spec
// slice from this one; cmd/gemfluxmcp passes DefaultSpecs unless a future
// configuration surface overrides it.
func DefaultSpecs() []Spec {
	return []Spec{
		{Name: "GramNegative", Locator: "GramNegative.json", Critical: true},
		{Name: "core", Locator: "core.json", Critical: true},
	}
}

// DefaultATPTestMedia is the ATP-correction test bundle applied during the
// first gapfill stage. The full bundle (on the order of fifty entries) is
// produced by the external reconstruction library at build time from its own
// media catalog, which is out of scope here; this is a representative subset
// covering the aerobic/anaerobic/fermentative conditions ATP correction is
// exercised against in practice, named after the compounds whose bounds they
// set.
func DefaultATPTestMedia() []ATPTestMedium {
	return []ATPTestMedium{
		{
			ID: "glucose_aerobic",
			Bounds: map[string][2]float64{
				"cpd00027_e0": {-10, 1000}, // D-glucose
				"cpd00007_e0": {-1000, 1000}, // O2
			},
		},
		{
			ID: "glucose_anaerobic",
			Bounds: map[string][2]float64{
				"cpd00027_e0": {-10, 1000}, // D-glucose
				"cpd00007_e0": {0, 0},      // O2 excluded
			},
		},
		{
			ID: "pyruvate_aerobic",
			Bounds: map[string][2]float64{
				"cpd00020_e0": {-10, 1000}, // pyruvate
				"cpd00007_e0": {-1000, 1000},
			},
		},
		{
			ID: "acetate_aerobic",
			Bounds: map[string][2]float64{
				"cpd00029_e0": {-10, 1000}, // acetate
				"cpd00007_e0": {-1000, 1000},
			},
		},
		{
			ID: "glycerol_aerobic",
			Bounds: map[string][2]float64{
				"cpd00100_e0": {-10, 1000}, // glycerol
				"cpd00007_e0": {-1000, 1000},
			},
		},
		{
			ID: "fermentative_minimal",
			Bounds: map[string][2]float64{
				"cpd00027_e0": {-10, 1000},
				"cpd00007_e0": {0, 0},
				"cpd00159_e0": {-1000, 1000}, // L-lactate, fermentation sink
			},
		},
	}
}
