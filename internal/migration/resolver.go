package migration

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"
)

// MatchOptions tunes title matching. Containment is a heuristic; very short
// normalized titles contain each other far too easily ("Doom" vs "Doom 3"),
// so below MinExactLength the match must be exact.
type MatchOptions struct {
	MinExactLength int
}

// DefaultMatchOptions returns the matching defaults used when no
// configuration is supplied.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{MinExactLength: 5}
}

// normalizeTitle lower-cases a title and strips every character that is not
// a letter or digit, so "The Witcher 3: Wild Hunt" and "the witcher 3 wild
// hunt" compare equal.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// titlesMatch reports whether two titles denote the same game under the
// symmetric-containment heuristic. Either normalized form containing the
// other counts as a match, which tolerates subtitle and punctuation drift.
func titlesMatch(a, b string, opts MatchOptions) bool {
	na, nb := normalizeTitle(a), normalizeTitle(b)
	if na == "" || nb == "" {
		return false
	}
	shorter := na
	if len(nb) < len(shorter) {
		shorter = nb
	}
	if len(shorter) < opts.MinExactLength {
		return na == nb
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// bestMatch picks the first candidate, in provider order, whose name matches
// the query title. Provider order is relevance order; no local re-ranking.
// Returns nil when nothing matches.
func bestMatch(title string, candidates []provider.Candidate, opts MatchOptions) *provider.Candidate {
	for i := range candidates {
		if titlesMatch(title, candidates[i].Name, opts) {
			return &candidates[i]
		}
	}
	return nil
}

// resolve searches the current provider for the title and applies the
// containment heuristic. A nil candidate with a nil error is the expected
// "could not migrate" outcome, not a failure.
func (s *Service) resolve(ctx context.Context, title string) (*provider.Candidate, error) {
	candidates, err := s.igdb.Search(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("provider search for %q failed: %w", title, err)
	}
	return bestMatch(title, candidates, s.opts), nil
}
