// Package template holds the read-only registry of reconstruction templates
// (named reaction/metabolite/compartment sets used by model construction and
// gapfilling) and the fixed ATP test-media bundle used by ATP correction.
package template

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// Template is a named reaction set used for genome-scale reconstruction.
// Reactions/Metabolites/Compartments are keyed by id; the values carry just
// enough to drive construction and gapfilling without re-parsing source
// files at tool-call time.
type Template struct {
	Name         string
	Reactions    map[string]TemplateReaction
	Metabolites  map[string]struct{}
	Compartments map[string]struct{}
}

// TemplateReaction is the template-side shape of a reaction: enough to
// materialize it against a working model during gapfill solution
// integration. TemplateID is the template-space key (e.g. "rxn05459_c"),
// which differs from a model-space reaction id by a missing trailing
// compartment index digit (see StripCompartmentIndex).
type TemplateReaction struct {
	TemplateID string
	Name       string
	Equation   string
}

// Source loads the raw bytes for a named template file; its default
// implementation reads the local filesystem, and an optional MinIO-backed
// implementation (internal/infrastructure/objectstore) can replace it.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Spec describes one configured template: its logical name, whether startup
// must abort if it fails to load, and the source-specific locator (e.g. a
// filename) passed to Source.Open.
type Spec struct {
	Name     string
	Locator  string
	Critical bool
}

// Registry is the immutable, process-lifetime set of loaded templates plus
// the ATP test-media bundle. It owns every Template value; callers receive
// read-only references.
type Registry struct {
	templates map[string]*Template
	names     []string
	atpMedia  []ATPTestMedium
}

// ATPTestMedium is one entry of the fixed ATP-correction test bundle: a name
// and the compound-id→bound pairs applied to probe ATP production.
type ATPTestMedium struct {
	ID      string
	Bounds  map[string][2]float64
}

// Load reads every configured template, failing startup only when a
// Critical template cannot be loaded or validated; non-critical failures are
// recorded as warnings and skipped. A loaded template must have a non-empty
// reaction set, metabolite set, and compartment set or it fails validation
// the same way regardless of criticality markers on the raw bytes.
func Load(ctx context.Context, src Source, specs []Spec, atpMedia []ATPTestMedium) (*Registry, []string, error) {
	reg := &Registry{templates: map[string]*Template{}, atpMedia: atpMedia}
	var warnings []string

	for _, spec := range specs {
		tmpl, err := loadOne(ctx, src, spec)
		if err != nil {
			if spec.Critical {
				return nil, nil, apperrors.Wrap(err, apperrors.CodeTemplateLoadError,
					fmt.Sprintf("critical template %q failed to load", spec.Name))
			}
			warnings = append(warnings, fmt.Sprintf("template %q skipped: %v", spec.Name, err))
			continue
		}
		reg.templates[spec.Name] = tmpl
		reg.names = append(reg.names, spec.Name)
	}

	if len(reg.templates) == 0 {
		return nil, nil, apperrors.New(apperrors.CodeTemplateLoadError, "no templates loaded; at least one critical template is required")
	}

	sort.Strings(reg.names)
	return reg, warnings, nil
}

func loadOne(ctx context.Context, src Source, spec Spec) (*Template, error) {
	r, err := src.Open(ctx, spec.Locator)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	tmpl, err := ParseTemplateJSON(spec.Name, r)
	if err != nil {
		return nil, err
	}
	if len(tmpl.Reactions) == 0 || len(tmpl.Metabolites) == 0 || len(tmpl.Compartments) == 0 {
		return nil, fmt.Errorf("template %q has an empty reaction, metabolite, or compartment set", spec.Name)
	}
	return tmpl, nil
}

// Get returns the named template or a validation error whose message
// enumerates the valid names.
func (r *Registry) Get(name string) (*Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "unknown template name").
			WithDetail(fmt.Sprintf("got %q; valid names: %s", name, strings.Join(r.names, ", ")))
	}
	return t, nil
}

// Names returns every loaded template name in sorted order.
func (r *Registry) Names() []string { return append([]string(nil), r.names...) }

// ATPTestMedia returns the fixed ATP-correction test bundle.
func (r *Registry) ATPTestMedia() []ATPTestMedium { return r.atpMedia }

// StripCompartmentIndex converts a model-space reaction id (e.g.
// "rxn05459_c0") into its template-space key ("rxn05459_c") by dropping a
// single trailing compartment index digit, per the gapfill solution
// integration contract. Ids without a trailing digit are returned unchanged.
func StripCompartmentIndex(modelReactionID string) string {
	if n := len(modelReactionID); n > 0 {
		last := modelReactionID[n-1]
		if last >= '0' && last <= '9' {
			return modelReactionID[:n-1]
		}
	}
	return modelReactionID
}

// Lookup finds the template reaction matching a model-space reaction id,
// applying StripCompartmentIndex first.
func (t *Template) Lookup(modelReactionID string) (TemplateReaction, bool) {
	key := StripCompartmentIndex(modelReactionID)
	rxn, ok := t.Reactions[key]
	return rxn, ok
}
