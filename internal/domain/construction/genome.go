// Package construction defines the external builder/annotator contracts and
// input validation for draft model construction from protein sequences.
package construction

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// aminoAcidPattern matches the 20-letter amino-acid alphabet, case-insensitive.
var aminoAcidPattern = regexp.MustCompile(`^[ACDEFGHIKLMNPQRSTVWYacdefghiklmnpqrstvwy]+$`)

// Genome is the in-memory handle the builder collaborator consumes: a set
// of named protein sequences, regardless of whether they arrived as a FASTA
// file or an inline mapping.
type Genome struct {
	Proteins map[string]string // protein id -> amino-acid sequence
}

// Input captures the "exactly one of FASTA path or inline mapping" source
// rule plus the remaining construction parameters.
type Input struct {
	FASTAPath     string
	ProteinSeqs   map[string]string
	TemplateName  string
	ModelBasename string
	Annotate      bool
}

// Validate enforces the exactly-one-of source rule and collects every
// invalid inline amino-acid sequence into a single error. It does not check
// protein id uniqueness: inline ids are unique as map keys, and duplicate
// ids in FASTA input are rejected by ParseFASTA.
func (in Input) Validate() error {
	hasFASTA := strings.TrimSpace(in.FASTAPath) != ""
	hasSeqs := len(in.ProteinSeqs) > 0
	if hasFASTA == hasSeqs {
		return apperrors.New(apperrors.CodeInvalidParam, "exactly one of fasta_path or protein_sequences must be supplied")
	}

	var invalid []string
	for id, seq := range in.ProteinSeqs {
		if strings.TrimSpace(seq) == "" || !aminoAcidPattern.MatchString(seq) {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return apperrors.New(apperrors.CodeInvalidParam, "invalid amino-acid sequences").
			WithDetail(fmt.Sprintf("protein ids: %s", strings.Join(invalid, ", ")))
	}
	return nil
}

// ParseFASTA parses a standard FASTA byte stream into a Genome, enforcing
// the same amino-acid alphabet as inline sequences and unique protein ids.
func ParseFASTA(data []byte) (*Genome, error) {
	genome := &Genome{Proteins: map[string]string{}}
	var curID string
	var curSeq strings.Builder
	var dup []string

	flush := func() {
		if curID == "" {
			return
		}
		if _, exists := genome.Proteins[curID]; exists {
			dup = append(dup, curID)
		}
		genome.Proteins[curID] = curSeq.String()
		curSeq.Reset()
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, ">") {
			flush()
			curID = strings.TrimSpace(strings.TrimPrefix(line, ">"))
			if i := strings.IndexAny(curID, " \t"); i >= 0 {
				curID = curID[:i]
			}
			continue
		}
		curSeq.WriteString(strings.TrimSpace(line))
	}
	flush()

	if len(dup) > 0 {
		sort.Strings(dup)
		return nil, apperrors.New(apperrors.CodeInvalidParam, "duplicate protein ids in FASTA input").
			WithDetail(strings.Join(dup, ", "))
	}

	var invalid []string
	for id, seq := range genome.Proteins {
		if strings.TrimSpace(seq) == "" || !aminoAcidPattern.MatchString(seq) {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, apperrors.New(apperrors.CodeInvalidParam, "invalid amino-acid sequences in FASTA input").
			WithDetail(strings.Join(invalid, ", "))
	}
	return genome, nil
}
