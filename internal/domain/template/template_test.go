package template_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/template"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

type fakeSource struct {
	files map[string]string
}

func (f fakeSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	content, ok := f.files[name]
	if !ok {
		return nil, apperrors.New(apperrors.CodeTemplateLoadError, "not found").WithDetail(name)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

const gramNegJSON = `{
	"reactions": [{"id": "rxn00001_c", "name": "r1", "equation": "cpd00001_c0 <=> cpd00002_c0"}],
	"metabolites": ["cpd00001_c0"],
	"compartments": ["c0"]
}`

func TestLoad_LoadsCriticalAndNonCriticalTemplates(t *testing.T) {
	src := fakeSource{files: map[string]string{"gramneg.json": gramNegJSON}}
	specs := []template.Spec{
		{Name: "gramneg", Locator: "gramneg.json", Critical: true},
		{Name: "gramdpos", Locator: "missing.json", Critical: false},
	}
	reg, warnings, err := template.Load(context.Background(), src, specs, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"gramneg"}, reg.Names())
	assert.NotEmpty(t, warnings)
}

func TestLoad_FailsWhenCriticalTemplateMissing(t *testing.T) {
	src := fakeSource{files: map[string]string{}}
	specs := []template.Spec{{Name: "gramneg", Locator: "missing.json", Critical: true}}
	_, _, err := template.Load(context.Background(), src, specs, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTemplateLoadError, apperrors.GetCode(err))
}

func TestLoad_FailsWhenNoTemplatesLoadedAtAll(t *testing.T) {
	src := fakeSource{files: map[string]string{}}
	specs := []template.Spec{{Name: "gramneg", Locator: "missing.json", Critical: false}}
	_, _, err := template.Load(context.Background(), src, specs, nil)
	require.Error(t, err)
}

func TestLoad_RejectsEmptyTemplate(t *testing.T) {
	src := fakeSource{files: map[string]string{"empty.json": `{}`}}
	specs := []template.Spec{{Name: "empty", Locator: "empty.json", Critical: true}}
	_, _, err := template.Load(context.Background(), src, specs, nil)
	require.Error(t, err)
}

func TestRegistry_Get_UnknownName(t *testing.T) {
	src := fakeSource{files: map[string]string{"gramneg.json": gramNegJSON}}
	reg, _, err := template.Load(context.Background(), src, []template.Spec{
		{Name: "gramneg", Locator: "gramneg.json", Critical: true},
	}, nil)
	require.NoError(t, err)

	_, err = reg.Get("gramdpos")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gramneg")
}

func TestRegistry_ATPTestMedia(t *testing.T) {
	src := fakeSource{files: map[string]string{"gramneg.json": gramNegJSON}}
	media := []template.ATPTestMedium{{ID: "atp_test_1", Bounds: map[string][2]float64{"cpd00027_e0": {-10, 1000}}}}
	reg, _, err := template.Load(context.Background(), src, []template.Spec{
		{Name: "gramneg", Locator: "gramneg.json", Critical: true},
	}, media)
	require.NoError(t, err)
	assert.Equal(t, media, reg.ATPTestMedia())
}

func TestStripCompartmentIndex(t *testing.T) {
	assert.Equal(t, "rxn00001_c", template.StripCompartmentIndex("rxn00001_c0"))
	assert.Equal(t, "rxn00001_c", template.StripCompartmentIndex("rxn00001_c"))
}

func TestTemplate_Lookup(t *testing.T) {
	src := fakeSource{files: map[string]string{"gramneg.json": gramNegJSON}}
	reg, _, err := template.Load(context.Background(), src, []template.Spec{
		{Name: "gramneg", Locator: "gramneg.json", Critical: true},
	}, nil)
	require.NoError(t, err)

	tmpl, err := reg.Get("gramneg")
	require.NoError(t, err)

	rxn, ok := tmpl.Lookup("rxn00001_c0")
	require.True(t, ok)
	assert.Equal(t, "r1", rxn.Name)

	_, ok = tmpl.Lookup("rxn99999_c0")
	assert.False(t, ok)
}
