package media

// DefaultPredefinedMedia builds the fixed media library cmd/gemfluxmcp
// inserts into the session store at startup under reserved ids (§4.C3):
// glucose minimal media under aerobic and anaerobic conditions, the pair
// E1/E2 exercise build_model/gapfill_model/run_fba against. The map key is
// the reserved MediaId; Media.Name carries a separate human-readable label.
func DefaultPredefinedMedia() map[string]*Media {
	aerobic := New("Glucose minimal (aerobic)", "e0", 10)
	aerobic.Compounds["cpd00027_e0"] = Bounds{Lower: -10, Upper: 1000}   // D-glucose
	aerobic.Compounds["cpd00007_e0"] = Bounds{Lower: -1000, Upper: 1000} // O2
	aerobic.Compounds["cpd00009_e0"] = Bounds{Lower: -1000, Upper: 1000} // Pi
	aerobic.Compounds["cpd00013_e0"] = Bounds{Lower: -1000, Upper: 1000} // NH3
	aerobic.Compounds["cpd00048_e0"] = Bounds{Lower: -1000, Upper: 1000} // sulfate
	aerobic.Compounds["cpd00067_e0"] = Bounds{Lower: -1000, Upper: 1000} // H+
	aerobic.Compounds["cpd00001_e0"] = Bounds{Lower: -1000, Upper: 1000} // H2O

	anaerobic := New("Glucose minimal (anaerobic)", "e0", 10)
	for id, b := range aerobic.Compounds {
		anaerobic.Compounds[id] = b
	}
	anaerobic.Compounds["cpd00007_e0"] = Bounds{Lower: 0, Upper: 0} // O2 excluded

	return map[string]*Media{
		"glucose_minimal_aerobic":   aerobic,
		"glucose_minimal_anaerobic": anaerobic,
	}
}
