package template

import (
	"encoding/json"
	"fmt"
	"io"
)

// rawTemplate is the on-disk JSON shape produced by the template-authoring
// tooling: flat arrays of reaction/metabolite/compartment objects rather
// than the map-keyed in-memory Template, so that hand-authored template
// files stay readable.
type rawTemplate struct {
	Reactions []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Equation string `json:"equation"`
	} `json:"reactions"`
	Metabolites  []string `json:"metabolites"`
	Compartments []string `json:"compartments"`
}

// ParseTemplateJSON decodes one template file into its in-memory Template
// form. name is the registry key the caller requested, independent of
// anything in the file itself.
func ParseTemplateJSON(name string, r io.Reader) (*Template, error) {
	var raw rawTemplate
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	tmpl := &Template{
		Name:         name,
		Reactions:    make(map[string]TemplateReaction, len(raw.Reactions)),
		Metabolites:  make(map[string]struct{}, len(raw.Metabolites)),
		Compartments: make(map[string]struct{}, len(raw.Compartments)),
	}
	for _, rxn := range raw.Reactions {
		tmpl.Reactions[rxn.ID] = TemplateReaction{TemplateID: rxn.ID, Name: rxn.Name, Equation: rxn.Equation}
	}
	for _, m := range raw.Metabolites {
		tmpl.Metabolites[m] = struct{}{}
	}
	for _, c := range raw.Compartments {
		tmpl.Compartments[c] = struct{}{}
	}
	return tmpl, nil
}
