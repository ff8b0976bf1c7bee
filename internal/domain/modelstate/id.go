// Package modelstate implements the dotted state-chain id scheme shared by
// ModelId and MediaId: <basename>.<state-chain>, where state-chain is a
// write-only append log over the tiny token alphabet {draft, gf}. The chain
// is never normalized — "draft.gf.gf" is a legal id meaning "gapfilled
// twice" and must round-trip unchanged.
package modelstate

import (
	"fmt"
	"regexp"
	"strings"
)

// Token is one element of a state chain.
type Token string

const (
	TokenDraft Token = "draft"
	TokenGF    Token = "gf"
)

// ID is a parsed <basename>.<chain> identifier. Basename may itself contain
// underscores; only "." delimits the chain, so basenames must never contain
// a literal ".".
type ID struct {
	Basename string
	Chain    []Token
}

var basenamePattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// Parse splits a dotted id into its basename and chain. An id with zero
// chain tokens (no "." at all) is valid — it represents a basename with an
// empty history, used only internally before the first ".draft" is applied.
func Parse(id string) (ID, error) {
	parts := strings.Split(id, ".")
	if len(parts) == 0 || parts[0] == "" {
		return ID{}, fmt.Errorf("id %q has an empty basename", id)
	}
	basename := parts[0]
	if !basenamePattern.MatchString(basename) {
		return ID{}, fmt.Errorf("id %q has an invalid basename %q", id, basename)
	}
	chain := make([]Token, 0, len(parts)-1)
	for _, p := range parts[1:] {
		switch Token(p) {
		case TokenDraft, TokenGF:
			chain = append(chain, Token(p))
		default:
			return ID{}, fmt.Errorf("id %q has unknown state token %q", id, p)
		}
	}
	return ID{Basename: basename, Chain: chain}, nil
}

// String renders the id back to its dotted form.
func (id ID) String() string {
	if len(id.Chain) == 0 {
		return id.Basename
	}
	tokens := make([]string, len(id.Chain))
	for i, t := range id.Chain {
		tokens[i] = string(t)
	}
	return id.Basename + "." + strings.Join(tokens, ".")
}

// WithDraft returns a new ID with ".draft" as its sole chain token,
// representing the initial construction of a model.
func (id ID) WithDraft() ID {
	return ID{Basename: id.Basename, Chain: []Token{TokenDraft}}
}

// WithGapfillAppended returns a new ID with ".gf" appended verbatim to the
// existing chain. It never deduplicates or normalizes — re-gapfilling a
// model that already contains "gf" tokens is a valid operation with its own
// history.
func (id ID) WithGapfillAppended() ID {
	next := append(append([]Token(nil), id.Chain...), TokenGF)
	return ID{Basename: id.Basename, Chain: next}
}

// State classifies an id per §4.C3 classify_state: "gapfilled" if the chain
// contains any "gf" token, "draft" if it ends in "draft" with no "gf" token,
// "unknown" otherwise (e.g. a bare basename with no chain).
func (id ID) State() string {
	hasGF := false
	for _, t := range id.Chain {
		if t == TokenGF {
			hasGF = true
		}
	}
	if hasGF {
		return "gapfilled"
	}
	if len(id.Chain) > 0 && id.Chain[len(id.Chain)-1] == TokenDraft {
		return "draft"
	}
	return "unknown"
}
