// Package session implements the in-memory model and media catalogs (§4.C3):
// id minting with collision retry, state-suffix transitions, enumeration,
// and deletion. The store is the sole owner of every StoredModel and
// non-predefined StoredMedia handle; everything else borrows read-only
// references through it.
package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/modelstate"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

// maxMintRetries bounds id-minting collision retries before surfacing a
// storage_error; collisions are expected to be extremely rare.
const maxMintRetries = 8

// ModelMetadata is the side-channel information stored alongside a model
// Handle — never inside it, per the Handle contract.
type ModelMetadata struct {
	Template        string
	CreatedAt       time.Time
	IsDraft         bool
	IsGapfilled     bool
	GapfillStats    *GapfillMetadata
}

// GapfillMetadata records the outcome of the most recent gapfill pass that
// produced this model id.
type GapfillMetadata struct {
	ReactionsAdded     []string
	GrowthRateBefore   float64
	GrowthRateAfter    float64
	GapfillingSuccess  bool
	TargetGrowthRate   float64
}

// StoredModel pairs a model Handle with its side-channel metadata.
type StoredModel struct {
	ID       string
	Handle   model.Handle
	Metadata ModelMetadata
}

// StoredMedia pairs a media.Media with whether it is one of the
// startup-loaded predefined entries (which are reserved and never deleted).
type StoredMedia struct {
	ID          string
	Media       *media.Media
	Predefined  bool
}

// Limits configures the soft caps on catalog size. Exceeding a limit logs a
// warning and never fails the insert — catalogs stay usable past the soft
// cap; the tool response carries no warning.
type Limits struct {
	MaxModels int
	MaxMedia  int
}

// DefaultLimits matches §4.C3's documented defaults.
var DefaultLimits = Limits{MaxModels: 100, MaxMedia: 50}

// Store is the process-lifetime, single-threaded-cooperative session
// catalog for models and media. A mutex is still held around every read
// and mutation because the optional admin gRPC surface
// (internal/infrastructure/admin) can read the catalog concurrently with
// tool dispatch even though tool dispatch itself is serial.
type Store struct {
	mu     sync.Mutex
	logger logging.Logger
	limits Limits

	models map[string]*StoredModel
	media  map[string]*StoredMedia
}

// New constructs an empty Store.
func New(logger logging.Logger, limits Limits) *Store {
	return &Store{logger: logger, limits: limits, models: map[string]*StoredModel{}, media: map[string]*StoredMedia{}}
}

// MintAutoID generates a collision-checked id of the form
// <prefix>_<yyyymmdd_hhmmss>_<short-random>, retrying with fresh randomness
// up to maxMintRetries before surfacing a storage_error.
func (s *Store) MintAutoID(prefix string, exists func(id string) bool) (string, error) {
	for i := 0; i < maxMintRetries; i++ {
		candidate := fmt.Sprintf("%s_%s_%s", prefix, time.Now().UTC().Format("20060102_150405"), shortRandom())
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", apperrors.New(apperrors.CodeObjectStoreError, "id minting exhausted retry budget").WithDetail(prefix)
}

// MintUserID sanitizes a user-supplied basename and appends state via
// modelstate; on collision it appends a timestamp (and microseconds if a
// second collision occurs) to the basename, per §4.C3.
func (s *Store) MintUserID(basename string, chainFn func(modelstate.ID) modelstate.ID, exists func(id string) bool) (string, error) {
	sanitized := sanitizeBasename(basename)
	id := chainFn(modelstate.ID{Basename: sanitized}).String()
	if !exists(id) {
		return id, nil
	}
	withTime := fmt.Sprintf("%s_%s", sanitized, time.Now().UTC().Format("20060102_150405"))
	id = chainFn(modelstate.ID{Basename: withTime}).String()
	if !exists(id) {
		return id, nil
	}
	withMicros := fmt.Sprintf("%s_%d", withTime, time.Now().UTC().Nanosecond()/1000)
	id = chainFn(modelstate.ID{Basename: withMicros}).String()
	if exists(id) {
		return "", apperrors.New(apperrors.CodeObjectStoreError, "id minting exhausted retry budget").WithDetail(basename)
	}
	return id, nil
}

func sanitizeBasename(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "model"
	}
	return b.String()
}

func shortRandom() string {
	id := uuid.NewString()
	return strings.ReplaceAll(id, "-", "")[:8]
}

// StoreModel inserts sm; fails if its id is already present (should not
// happen given minting, but guarded for defense in depth).
func (s *Store) StoreModel(sm *StoredModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.models[sm.ID]; exists {
		return apperrors.New(apperrors.CodeConflict, "model id already present").WithDetail(sm.ID)
	}
	if len(s.models) >= s.limits.MaxModels {
		s.logger.Warn("model soft cap exceeded", logging.Int("limit", s.limits.MaxModels), logging.String("id", sm.ID))
	}
	s.models[sm.ID] = sm
	return nil
}

// RetrieveModel returns the stored model, or a not_found_error listing every
// currently stored model id to aid LLM self-correction.
func (s *Store) RetrieveModel(id string) (*StoredModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sm, ok := s.models[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeModelNotFound, "model not found").
			WithDetail(fmt.Sprintf("available_ids=%s", strings.Join(s.modelIDsLocked(), ",")))
	}
	return sm, nil
}

// ModelExists is a cheap membership check for id minting.
func (s *Store) ModelExists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.models[id]
	return ok
}

// ListModels enumerates every stored model with its metadata, sorted by id.
func (s *Store) ListModels() []*StoredModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*StoredModel, 0, len(s.models))
	for _, sm := range s.models {
		out = append(out, sm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteModel removes id, or returns a not_found_error if absent.
func (s *Store) DeleteModel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[id]; !ok {
		return apperrors.New(apperrors.CodeModelNotFound, "model not found").
			WithDetail(fmt.Sprintf("available_ids=%s", strings.Join(s.modelIDsLocked(), ",")))
	}
	delete(s.models, id)
	return nil
}

func (s *Store) modelIDsLocked() []string {
	ids := make([]string, 0, len(s.models))
	for id := range s.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	const cap = 50
	if len(ids) > cap {
		ids = ids[:cap]
	}
	return ids
}

// StoreMedia inserts sm, failing if the id is already present (predefined
// ids are inserted once at startup and are thereafter immutable via this
// path — callers must not attempt to overwrite them).
func (s *Store) StoreMedia(sm *StoredMedia) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, exists := s.media[sm.ID]; exists {
		if existing.Predefined {
			return apperrors.New(apperrors.CodeConflict, "predefined media id is reserved and cannot be overwritten").WithDetail(sm.ID)
		}
		return apperrors.New(apperrors.CodeConflict, "media id already present").WithDetail(sm.ID)
	}
	if !sm.Predefined && s.countNonPredefinedMediaLocked() >= s.limits.MaxMedia {
		s.logger.Warn("media soft cap exceeded", logging.Int("limit", s.limits.MaxMedia), logging.String("id", sm.ID))
	}
	s.media[sm.ID] = sm
	return nil
}

func (s *Store) countNonPredefinedMediaLocked() int {
	n := 0
	for _, m := range s.media {
		if !m.Predefined {
			n++
		}
	}
	return n
}

// RetrieveMedia returns the stored media, or a not_found_error listing
// available media ids.
func (s *Store) RetrieveMedia(id string) (*StoredMedia, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sm, ok := s.media[id]
	if !ok {
		ids := make([]string, 0, len(s.media))
		for k := range s.media {
			ids = append(ids, k)
		}
		sort.Strings(ids)
		return nil, apperrors.New(apperrors.CodeMediaNotFound, "media not found").
			WithDetail(fmt.Sprintf("available_ids=%s", strings.Join(ids, ",")))
	}
	return sm, nil
}

// MediaExists is a cheap membership check for id minting.
func (s *Store) MediaExists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.media[id]
	return ok
}

// ListMedia enumerates every stored media, sorted by id.
func (s *Store) ListMedia() []*StoredMedia {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*StoredMedia, 0, len(s.media))
	for _, m := range s.media {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteMedia removes id unless it is predefined, returning a not_found or
// conflict error as appropriate.
func (s *Store) DeleteMedia(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.media[id]
	if !ok {
		return apperrors.New(apperrors.CodeMediaNotFound, "media not found").WithDetail(id)
	}
	if m.Predefined {
		return apperrors.New(apperrors.CodeConflict, "predefined media cannot be deleted").WithDetail(id)
	}
	delete(s.media, id)
	return nil
}

// ClassifyState reports the model id's lifecycle state per §4.C3.
func ClassifyState(id string) (string, error) {
	parsed, err := modelstate.Parse(id)
	if err != nil {
		return "", apperrors.New(apperrors.CodeInvalidModelID, "malformed model id").WithCause(err)
	}
	return parsed.State(), nil
}

// Shutdown clears both catalogs and logs their final counts.
func (s *Store) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("session store shutting down",
		logging.Int("models", len(s.models)),
		logging.Int("media", len(s.media)),
	)
	s.models = map[string]*StoredModel{}
	s.media = map[string]*StoredMedia{}
}
