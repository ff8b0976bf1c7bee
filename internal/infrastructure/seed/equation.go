package seed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// reversibleArrow, forwardArrow, and reverseArrow are the three equation
// separators a template or gapfill-candidate reaction equation may use.
const (
	reversibleArrow = "<=>"
	forwardArrow    = "=>"
	reverseArrow    = "<="
)

var equationTermPattern = regexp.MustCompile(`^\(?(-?\d+(?:\.\d+)?)\)?\s*(cpd\d{5}(?:_[a-zA-Z]\d*)?)$`)

// parseEquationStoichiometry decodes a ModelSEED-style equation string
// ("(1) cpd00001_c0 <=> (1) cpd00027_c0") into a metabolite-id -> signed
// coefficient map: reactants negative, products positive. A term without an
// explicit "(N)" prefix defaults to coefficient 1.
func parseEquationStoichiometry(equation string) (map[string]float64, error) {
	left, right, _, err := splitEquation(equation)
	if err != nil {
		return nil, err
	}

	out := map[string]float64{}
	if err := addTerms(out, left, -1); err != nil {
		return nil, err
	}
	if err := addTerms(out, right, 1); err != nil {
		return nil, err
	}
	return out, nil
}

// equationReversible reports whether an equation's arrow token is the
// bidirectional form.
func equationReversible(equation string) bool {
	_, _, arrow, err := splitEquation(equation)
	return err == nil && arrow == reversibleArrow
}

func splitEquation(equation string) (left, right, arrow string, err error) {
	for _, candidate := range []string{reversibleArrow, forwardArrow, reverseArrow} {
		if idx := strings.Index(equation, candidate); idx >= 0 {
			return equation[:idx], equation[idx+len(candidate):], candidate, nil
		}
	}
	return "", "", "", fmt.Errorf("equation has no recognized arrow: %q", equation)
}

func addTerms(out map[string]float64, side string, sign float64) error {
	for _, term := range strings.Split(side, "+") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		m := equationTermPattern.FindStringSubmatch(term)
		if m == nil {
			return fmt.Errorf("unrecognized equation term: %q", term)
		}
		coeff := 1.0
		if m[1] != "" {
			parsed, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return fmt.Errorf("invalid coefficient in term %q: %w", term, err)
			}
			coeff = parsed
		}
		out[m[2]] += sign * coeff
	}
	return nil
}

// compartmentOfMetabolite extracts the trailing compartment tag from a
// fully-specified metabolite id ("cpd00027_e0" -> "e0"); ids without one
// return "".
func compartmentOfMetabolite(metaboliteID string) string {
	idx := strings.LastIndex(metaboliteID, "_")
	if idx < 0 || idx == len(metaboliteID)-1 {
		return ""
	}
	return metaboliteID[idx+1:]
}
