package biochem

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// Source supplies the two raw TSV streams the index is built from. Its two
// implementations are a local filesystem reader (the default) and an
// optional MinIO object-store reader (see internal/infrastructure/objectstore).
type Source interface {
	OpenCompounds(ctx context.Context) (io.ReadCloser, error)
	OpenReactions(ctx context.Context) (io.ReadCloser, error)
}

// requiredCompoundColumns and requiredReactionColumns are validated against
// the TSV header row before a single data row is parsed.
var (
	requiredCompoundColumns = []string{"id", "name", "abbreviation", "formula", "aliases"}
	requiredReactionColumns = []string{"id", "name", "abbreviation", "equation", "ec_numbers", "reversibility", "pathways", "aliases"}

	minExpectedCompounds = 30000
	minExpectedReactions = 35000
)

// Index is the immutable, process-lifetime biochemistry index: O(1) exact
// lookup plus ranked search over ~34k compounds and ~44k reactions. It is
// built once at startup by Load and never mutated afterward, so it may be
// shared by reference across every tool call without locking.
type Index struct {
	compoundsByID map[string]*CompoundRecord
	reactionsByID map[string]*ReactionRecord

	compoundByLowerName map[string][]*CompoundRecord
	compoundByLowerAbbr map[string][]*CompoundRecord
	compoundByFormula   map[string][]*CompoundRecord

	reactionByLowerName map[string][]*ReactionRecord
	reactionByLowerAbbr map[string][]*ReactionRecord
	reactionByEC        map[string][]*ReactionRecord

	filter *negativeFilter

	compoundOrder []string // ids in load order, for deterministic fallbacks
	reactionOrder []string

	warnings []string
}

// LoadStats summarizes a completed Load for startup logging.
type LoadStats struct {
	CompoundCount int
	ReactionCount int
	Warnings      []string
}

// Load parses the compound and reaction TSVs from src, validates required
// columns, and builds every index structure. A missing or unreadable file is
// a database_error; a row missing required columns is logged (via the
// returned stats' Warnings) and skipped, never failing the whole load. Row
// counts below the expected minimum produce a warning, not a failure.
func Load(ctx context.Context, src Source) (*Index, LoadStats, error) {
	idx := &Index{
		compoundsByID:       map[string]*CompoundRecord{},
		reactionsByID:       map[string]*ReactionRecord{},
		compoundByLowerName: map[string][]*CompoundRecord{},
		compoundByLowerAbbr: map[string][]*CompoundRecord{},
		compoundByFormula:   map[string][]*CompoundRecord{},
		reactionByLowerName: map[string][]*ReactionRecord{},
		reactionByLowerAbbr: map[string][]*ReactionRecord{},
		reactionByEC:        map[string][]*ReactionRecord{},
	}

	cr, err := src.OpenCompounds(ctx)
	if err != nil {
		return nil, LoadStats{}, apperrors.Wrap(err, apperrors.CodeBiochemIndexError, "failed to open compounds TSV").
			WithDetail("try setting GEMFLUX_BIOCHEM_DIR to the directory containing compounds.tsv")
	}
	defer cr.Close()
	if err := idx.loadCompounds(cr); err != nil {
		return nil, LoadStats{}, err
	}

	rr, err := src.OpenReactions(ctx)
	if err != nil {
		return nil, LoadStats{}, apperrors.Wrap(err, apperrors.CodeBiochemIndexError, "failed to open reactions TSV").
			WithDetail("try setting GEMFLUX_BIOCHEM_DIR to the directory containing reactions.tsv")
	}
	defer rr.Close()
	if err := idx.loadReactions(rr); err != nil {
		return nil, LoadStats{}, err
	}

	if n := len(idx.compoundsByID); n < minExpectedCompounds {
		idx.warnings = append(idx.warnings, fmt.Sprintf("compound count %d below expected minimum %d", n, minExpectedCompounds))
	}
	if n := len(idx.reactionsByID); n < minExpectedReactions {
		idx.warnings = append(idx.warnings, fmt.Sprintf("reaction count %d below expected minimum %d", n, minExpectedReactions))
	}

	idx.filter = newNegativeFilter(len(idx.compoundsByID), len(idx.reactionsByID))
	for id := range idx.compoundsByID {
		idx.filter.addCompound(id)
	}
	for id := range idx.reactionsByID {
		idx.filter.addReaction(id)
	}

	return idx, LoadStats{
		CompoundCount: len(idx.compoundsByID),
		ReactionCount: len(idx.reactionsByID),
		Warnings:      idx.warnings,
	}, nil
}

func (idx *Index) loadCompounds(r io.Reader) error {
	header, rows, err := readTSV(r)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeBiochemIndexError, "failed to read compounds TSV")
	}
	cols, err := columnIndex(header, requiredCompoundColumns)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeBiochemIndexError, "compounds TSV missing required columns")
	}
	for _, row := range rows {
		rec, ok := parseCompoundRow(row, cols)
		if !ok {
			idx.warnings = append(idx.warnings, "skipped malformed compound row")
			continue
		}
		idx.compoundsByID[rec.ID] = rec
		idx.compoundOrder = append(idx.compoundOrder, rec.ID)
		lname := strings.ToLower(rec.Name)
		idx.compoundByLowerName[lname] = append(idx.compoundByLowerName[lname], rec)
		labbr := strings.ToLower(rec.Abbreviation)
		idx.compoundByLowerAbbr[labbr] = append(idx.compoundByLowerAbbr[labbr], rec)
		if rec.Formula != "" {
			idx.compoundByFormula[rec.Formula] = append(idx.compoundByFormula[rec.Formula], rec)
		}
	}
	return nil
}

func (idx *Index) loadReactions(r io.Reader) error {
	header, rows, err := readTSV(r)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeBiochemIndexError, "failed to read reactions TSV")
	}
	cols, err := columnIndex(header, requiredReactionColumns)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeBiochemIndexError, "reactions TSV missing required columns")
	}
	idToName := func(id string) (string, bool) {
		c, ok := idx.compoundsByID[id]
		if !ok {
			return "", false
		}
		return c.Name, true
	}
	for _, row := range rows {
		rec, ok := parseReactionRow(row, cols, idToName)
		if !ok {
			idx.warnings = append(idx.warnings, "skipped malformed reaction row")
			continue
		}
		idx.reactionsByID[rec.ID] = rec
		idx.reactionOrder = append(idx.reactionOrder, rec.ID)
		lname := strings.ToLower(rec.Name)
		idx.reactionByLowerName[lname] = append(idx.reactionByLowerName[lname], rec)
		labbr := strings.ToLower(rec.Abbreviation)
		idx.reactionByLowerAbbr[labbr] = append(idx.reactionByLowerAbbr[labbr], rec)
		for _, ec := range rec.ECNumbers {
			idx.reactionByEC[ec] = append(idx.reactionByEC[ec], rec)
		}
	}
	return nil
}

// GetCompound performs the exact O(1) lookup. An id that doesn't match the
// cpdNNNNN pattern is a validation error, not NotFound.
func (idx *Index) GetCompound(id string) (*CompoundRecord, error) {
	if !IsCompoundID(id) {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "compound id must match pattern cpdNNNNN").WithDetail(id)
	}
	if !idx.filter.maybeHasCompound(id) {
		return nil, idx.notFoundCompound(id)
	}
	rec, ok := idx.compoundsByID[id]
	if !ok {
		return nil, idx.notFoundCompound(id)
	}
	return rec, nil
}

// GetReaction performs the exact O(1) lookup. An id that doesn't match the
// rxnNNNNN pattern is a validation error, not NotFound.
func (idx *Index) GetReaction(id string) (*ReactionRecord, error) {
	if !IsReactionID(id) {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "reaction id must match pattern rxnNNNNN").WithDetail(id)
	}
	if !idx.filter.maybeHasReaction(id) {
		return nil, idx.notFoundReaction(id)
	}
	rec, ok := idx.reactionsByID[id]
	if !ok {
		return nil, idx.notFoundReaction(id)
	}
	return rec, nil
}

// AllReactions returns every loaded reaction record, in no particular
// order. Used by callers that need to build a derived structure over the
// whole reaction network (e.g. the pathway graph) rather than looking up
// individual ids.
func (idx *Index) AllReactions() []*ReactionRecord {
	out := make([]*ReactionRecord, 0, len(idx.reactionsByID))
	for _, rec := range idx.reactionsByID {
		out = append(out, rec)
	}
	return out
}

func (idx *Index) notFoundCompound(id string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeCompoundNotFound, "compound not found").
		WithDetail(fmt.Sprintf("id=%s; try search_compounds", id))
}

func (idx *Index) notFoundReaction(id string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeReactionNotFound, "reaction not found").
		WithDetail(fmt.Sprintf("id=%s; try search_reactions", id))
}

// CompoundName resolves an id to its display name for callers (such as the
// equation formatter and FBA enrichment) that only need the name and can
// tolerate absence.
func (idx *Index) CompoundName(id string) (string, bool) {
	if rec, ok := idx.compoundsByID[id]; ok {
		return rec.Name, true
	}
	return "", false
}

// compound search tiers, lower wins.
const (
	tierCompoundExactID = iota + 1
	tierCompoundExactName
	tierCompoundExactAbbr
	tierCompoundPartialName
	tierCompoundExactFormula
	tierCompoundAliasSubstring
)

// reaction search tiers, lower wins.
const (
	tierReactionExactID = iota + 1
	tierReactionExactName
	tierReactionExactAbbr
	tierReactionExactEC
	tierReactionPartialName
	tierReactionAliasSubstring
	tierReactionPathwaySubstring
)

// SearchResult is one ranked hit from SearchCompounds or SearchReactions.
type SearchResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MatchField string `json:"match_field"`
	MatchType  string `json:"match_type"` // "exact" | "partial"
	tier       int
}

// SearchCompounds ranks candidates per the §4.C1 tier table, deduplicates to
// each record's best tier, sorts ties alphabetically by id, and truncates to
// limit. An empty hit set returns a short list of alternate-query
// suggestions instead of an error.
func (idx *Index) SearchCompounds(query string, limit int) ([]SearchResult, bool, []string) {
	q := strings.ToLower(strings.TrimSpace(query))
	best := map[string]SearchResult{}

	consider := func(rec *CompoundRecord, tier int, field, matchType string) {
		cur, ok := best[rec.ID]
		if !ok || tier < cur.tier {
			best[rec.ID] = SearchResult{ID: rec.ID, Name: rec.Name, MatchField: field, MatchType: matchType, tier: tier}
		}
	}

	if rec, ok := idx.compoundsByID[strings.TrimSpace(query)]; ok {
		consider(rec, tierCompoundExactID, "id", "exact")
	}
	for _, rec := range idx.compoundByLowerName[q] {
		consider(rec, tierCompoundExactName, "name", "exact")
	}
	for _, rec := range idx.compoundByLowerAbbr[q] {
		consider(rec, tierCompoundExactAbbr, "abbreviation", "exact")
	}
	if q != "" {
		for lname, recs := range idx.compoundByLowerName {
			if lname != q && strings.Contains(lname, q) {
				for _, rec := range recs {
					consider(rec, tierCompoundPartialName, "name", "partial")
				}
			}
		}
	}
	for _, rec := range idx.compoundByFormula[strings.TrimSpace(query)] {
		consider(rec, tierCompoundExactFormula, "formula", "exact")
	}
	if q != "" {
		for _, rec := range idx.compoundsByID {
			if aliasSubstringMatch(rec.Aliases, q) {
				consider(rec, tierCompoundAliasSubstring, "aliases", "partial")
			}
		}
	}

	results := sortedResults(best)
	truncated := len(results) > limit && limit > 0
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	var suggestions []string
	if len(results) == 0 {
		suggestions = idx.suggestCompoundQueries(q)
	}
	return results, truncated, suggestions
}

// SearchReactions mirrors SearchCompounds with the reaction-specific tier
// table (which additionally ranks exact EC-number matches and pathway
// substring matches).
func (idx *Index) SearchReactions(query string, limit int) ([]SearchResult, bool, []string) {
	q := strings.ToLower(strings.TrimSpace(query))
	best := map[string]SearchResult{}

	consider := func(rec *ReactionRecord, tier int, field, matchType string) {
		cur, ok := best[rec.ID]
		if !ok || tier < cur.tier {
			best[rec.ID] = SearchResult{ID: rec.ID, Name: rec.Name, MatchField: field, MatchType: matchType, tier: tier}
		}
	}

	if rec, ok := idx.reactionsByID[strings.TrimSpace(query)]; ok {
		consider(rec, tierReactionExactID, "id", "exact")
	}
	for _, rec := range idx.reactionByLowerName[q] {
		consider(rec, tierReactionExactName, "name", "exact")
	}
	for _, rec := range idx.reactionByLowerAbbr[q] {
		consider(rec, tierReactionExactAbbr, "abbreviation", "exact")
	}
	for _, rec := range idx.reactionByEC[strings.TrimSpace(query)] {
		consider(rec, tierReactionExactEC, "ec_numbers", "exact")
	}
	if q != "" {
		for lname, recs := range idx.reactionByLowerName {
			if lname != q && strings.Contains(lname, q) {
				for _, rec := range recs {
					consider(rec, tierReactionPartialName, "name", "partial")
				}
			}
		}
		for _, rec := range idx.reactionsByID {
			if aliasSubstringMatch(rec.Aliases, q) {
				consider(rec, tierReactionAliasSubstring, "aliases", "partial")
				continue
			}
			for _, pw := range rec.Pathways {
				if strings.Contains(strings.ToLower(pw), q) {
					consider(rec, tierReactionPathwaySubstring, "pathways", "partial")
					break
				}
			}
		}
	}

	results := sortedResults(best)
	truncated := len(results) > limit && limit > 0
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	var suggestions []string
	if len(results) == 0 {
		suggestions = idx.suggestReactionQueries(q)
	}
	return results, truncated, suggestions
}

func aliasSubstringMatch(aliases map[string][]string, q string) bool {
	if q == "" {
		return false
	}
	for _, vals := range aliases {
		for _, v := range vals {
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
	}
	return false
}

func sortedResults(best map[string]SearchResult) []SearchResult {
	results := make([]SearchResult, 0, len(best))
	for _, r := range best {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].tier != results[j].tier {
			return results[i].tier < results[j].tier
		}
		return results[i].ID < results[j].ID
	})
	return results
}

// suggestCompoundQueries offers up to three near-miss alternatives when a
// search returns nothing, so an LLM caller can self-correct without another
// round trip. The default implementation does a cheap prefix scan; the
// optional OpenSearch fallback (internal/infrastructure/search) replaces
// this with fuzzy matching when enabled.
func (idx *Index) suggestCompoundQueries(q string) []string {
	return prefixSuggestions(q, idx.compoundByLowerName, 3)
}

func (idx *Index) suggestReactionQueries(q string) []string {
	return prefixSuggestions(q, idx.reactionByLowerName, 3)
}

func prefixSuggestions[T any](q string, byName map[string][]T, n int) []string {
	if q == "" || len(q) < 3 {
		return nil
	}
	prefix := q[:3]
	out := []string{}
	for name := range byName {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
			if len(out) >= n {
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// readTSV reads a full tab-separated stream into a header row and data rows.
func readTSV(r io.Reader) ([]string, [][]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("empty TSV stream")
	}
	header := strings.Split(scanner.Text(), "\t")
	var rows [][]string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return header, rows, nil
}

// columnIndex returns the position of each required column in header, or an
// error listing which required columns are missing.
func columnIndex(header []string, required []string) (map[string]int, error) {
	pos := map[string]int{}
	for i, h := range header {
		pos[strings.TrimSpace(strings.ToLower(h))] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := pos[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return pos, nil
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseCompoundRow(row []string, cols map[string]int) (*CompoundRecord, bool) {
	id := strings.TrimSpace(field(row, cols, "id"))
	if !IsCompoundID(id) {
		return nil, false
	}
	mass, _ := strconv.ParseFloat(strings.TrimSpace(field(row, cols, "mass")), 64)
	charge, _ := strconv.Atoi(strings.TrimSpace(field(row, cols, "charge")))
	return &CompoundRecord{
		ID:           id,
		Name:         field(row, cols, "name"),
		Abbreviation: field(row, cols, "abbreviation"),
		Formula:      field(row, cols, "formula"),
		Mass:         mass,
		Charge:       charge,
		InChIKey:     field(row, cols, "inchikey"),
		SMILES:       field(row, cols, "smiles"),
		Aliases:      ParseAliasString(field(row, cols, "aliases")),
	}, true
}

func parseReactionRow(row []string, cols map[string]int, idToName func(string) (string, bool)) (*ReactionRecord, bool) {
	id := strings.TrimSpace(field(row, cols, "id"))
	if !IsReactionID(id) {
		return nil, false
	}
	direction := strings.TrimSpace(field(row, cols, "reversibility"))
	var ecs []string
	for _, e := range strings.Split(field(row, cols, "ec_numbers"), "|") {
		e = strings.TrimSpace(e)
		if e != "" {
			ecs = append(ecs, e)
		}
	}
	equationWithIDs := field(row, cols, "equation")
	isTransport := strings.Contains(strings.ToLower(field(row, cols, "name")), "transport") ||
		strings.Contains(equationWithIDs, "[e0]") && strings.Contains(equationWithIDs, "[c0]")
	return &ReactionRecord{
		ID:                id,
		Name:              field(row, cols, "name"),
		Abbreviation:      field(row, cols, "abbreviation"),
		EquationWithIDs:    equationWithIDs,
		EquationWithNames:  HumanReadableEquation(field(row, cols, "definition"), equationWithIDs, idToName),
		Reversibility:     DecodeReversibility(direction),
		Direction:         direction,
		ECNumbers:         ecs,
		Pathways:          ParsePathwayList(field(row, cols, "pathways")),
		IsTransport:       isTransport,
		Aliases:           ParseAliasString(field(row, cols, "aliases")),
	}, true
}
