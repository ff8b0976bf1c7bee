// Package objectstore provides the biochem.Source and template.Source
// implementations that load the compound/reaction TSV pair and
// reconstruction template JSON files gem-flux-mcp starts from: a local
// filesystem implementation used by default, and an optional MinIO-backed
// implementation selected by biochem.source/template.source configuration.
package objectstore

import (
	"context"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// LocalSource reads the biochemistry TSV pair and template JSON files from
// a local directory tree. It implements both biochem.Source and
// template.Source since both only ever need to open a named file.
type LocalSource struct {
	biochemDir  string
	templateDir string
}

// NewLocalSource builds a LocalSource rooted at biochemDir (for
// compounds.tsv/reactions.tsv) and templateDir (for named template files).
func NewLocalSource(biochemDir, templateDir string) *LocalSource {
	return &LocalSource{biochemDir: biochemDir, templateDir: templateDir}
}

func (s *LocalSource) OpenCompounds(ctx context.Context) (io.ReadCloser, error) {
	return s.open(filepath.Join(s.biochemDir, "compounds.tsv"))
}

func (s *LocalSource) OpenReactions(ctx context.Context) (io.ReadCloser, error) {
	return s.open(filepath.Join(s.biochemDir, "reactions.tsv"))
}

// Open implements template.Source: name is a template locator relative to
// templateDir (e.g. "gram_negative.json").
func (s *LocalSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.open(filepath.Join(s.templateDir, name))
}

func (s *LocalSource) open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectStoreError, "failed to open local source file").
			WithDetail(path)
	}
	return f, nil
}
