// Package construction implements the draft-model-building use case (C4):
// parse a genome, optionally annotate it, build a draft model against a
// named template, attach ATP maintenance, and register the result in the
// session store under a freshly minted id.
package construction

import (
	"context"
	"time"

	domainconstruction "github.com/jplfaria/gem-flux-mcp/internal/domain/construction"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/modelstate"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/template"
	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

// Service wraps the construction domain logic with session-store
// registration. It holds no biological state itself; the Builder and
// Annotator collaborators do the real work.
type Service struct {
	store     *session.Store
	templates *template.Registry
	builder   domainconstruction.Builder
	annotator domainconstruction.Annotator
	logger    logging.Logger
}

// New constructs a Service. annotator may be nil if no annotation
// collaborator is configured; BuildModel then fails with
// CodeAnnotatorFailure when Input.Annotate is set.
func New(store *session.Store, templates *template.Registry, builder domainconstruction.Builder, annotator domainconstruction.Annotator, logger logging.Logger) *Service {
	return &Service{store: store, templates: templates, builder: builder, annotator: annotator, logger: logger}
}

// BuildModelInput is the tool-facing request shape for build_model.
type BuildModelInput struct {
	FASTAPath     string
	ProteinSeqs   map[string]string
	TemplateName  string
	ModelBasename string
	Annotate      bool
}

// BuildModelOutput is the tool-facing response shape.
type BuildModelOutput struct {
	ModelID        string
	Stats          model.Stats
	Interpretation domainconstruction.Interpretation
	NextSteps      []string
	CreatedAt      time.Time
}

// BuildModel parses the genome, annotates it if requested and configured,
// builds a draft model against the named template, attaches ATP
// maintenance, and stores the result under a newly minted ".draft" id.
func (s *Service) BuildModel(ctx context.Context, in BuildModelInput) (BuildModelOutput, error) {
	genome, err := s.parseGenome(in)
	if err != nil {
		return BuildModelOutput{}, err
	}

	tmpl, err := s.templates.Get(in.TemplateName)
	if err != nil {
		return BuildModelOutput{}, err
	}

	if in.Annotate {
		if s.annotator == nil {
			return BuildModelOutput{}, apperrors.New(apperrors.CodeAnnotatorFailure, "annotation requested but no annotator is configured")
		}
		if err := s.annotator.Annotate(ctx, genome); err != nil {
			return BuildModelOutput{}, apperrors.Wrap(err, apperrors.CodeAnnotatorFailure, "functional annotation failed")
		}
	}

	handle, err := s.builder.Build(ctx, genome, tmpl)
	if err != nil {
		return BuildModelOutput{}, apperrors.Wrap(err, apperrors.CodeConstructionError, "draft model construction failed")
	}
	s.builder.EnsureATPMaintenance(handle)

	id, err := s.store.MintUserID(in.ModelBasename, func(base modelstate.ID) modelstate.ID { return base.WithDraft() }, s.store.ModelExists)
	if err != nil {
		return BuildModelOutput{}, err
	}

	sm := &session.StoredModel{
		ID:     id,
		Handle: handle,
		Metadata: session.ModelMetadata{
			Template:  in.TemplateName,
			CreatedAt: time.Now().UTC(),
			IsDraft:   true,
		},
	}
	if err := s.store.StoreModel(sm); err != nil {
		return BuildModelOutput{}, err
	}

	s.logger.Info("draft model built",
		logging.String("model_id", id),
		logging.String("template", in.TemplateName),
	)

	stats := model.Summarize(handle)
	interp := domainconstruction.Interpret(stats, in.Annotate && s.annotator != nil)
	nextSteps := domainconstruction.NextSteps(stats)

	return BuildModelOutput{
		ModelID:        id,
		Stats:          stats,
		Interpretation: interp,
		NextSteps:      nextSteps,
		CreatedAt:      sm.Metadata.CreatedAt,
	}, nil
}

func (s *Service) parseGenome(in BuildModelInput) (*domainconstruction.Genome, error) {
	gi := domainconstruction.Input{
		FASTAPath:     in.FASTAPath,
		ProteinSeqs:   in.ProteinSeqs,
		TemplateName:  in.TemplateName,
		ModelBasename: in.ModelBasename,
		Annotate:      in.Annotate,
	}
	if err := gi.Validate(); err != nil {
		return nil, err
	}
	if in.ProteinSeqs != nil {
		return &domainconstruction.Genome{Proteins: in.ProteinSeqs}, nil
	}
	data, err := readFile(in.FASTAPath)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "unable to read fasta_path").WithCause(err).WithDetail(in.FASTAPath)
	}
	return domainconstruction.ParseFASTA(data)
}
