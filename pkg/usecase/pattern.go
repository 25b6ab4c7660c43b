package usecase

import (
	"iter"
	"regexp"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/linkrelay/pkg/domain/types"
)

// PatternSet holds one compiled identifier pattern per team key
type PatternSet struct {
	keys     []types.TeamKey
	patterns []*regexp.Regexp
}

// BuildPatterns compiles a case-insensitive "<KEY>-<digits>" pattern for each team
// key. Empty keys are dropped and keys differing only in case collapse into one.
func BuildPatterns(keys []types.TeamKey) (*PatternSet, error) {
	set := &PatternSet{}
	seen := make(map[types.TeamKey]struct{}, len(keys))

	for _, key := range keys {
		if key == "" {
			continue
		}
		norm := key.Normalize()
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}

		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(string(norm)) + `-[0-9]+`)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to compile identifier pattern", goerr.V("key", key))
		}
		set.keys = append(set.keys, norm)
		set.patterns = append(set.patterns, re)
	}

	return set, nil
}

// Keys returns the normalized team keys in build order
func (p *PatternSet) Keys() []types.TeamKey {
	return append([]types.TeamKey(nil), p.keys...)
}

// Len returns the number of patterns
func (p *PatternSet) Len() int {
	return len(p.patterns)
}

type match struct {
	start int
	text  string
}

// Scan yields each distinct identifier found in text, upper-cased, in order of first
// appearance. Matching starts when the sequence is first iterated.
func (p *PatternSet) Scan(text string) iter.Seq[types.IssueIdentifier] {
	return func(yield func(types.IssueIdentifier) bool) {
		if p == nil || text == "" {
			return
		}

		var matches []match
		for _, re := range p.patterns {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				matches = append(matches, match{start: loc[0], text: text[loc[0]:loc[1]]})
			}
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].start < matches[j].start
		})

		seen := make(map[types.IssueIdentifier]struct{}, len(matches))
		for _, m := range matches {
			if len(m.text) == 0 {
				continue
			}
			id := types.NewIssueIdentifier(m.text)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			if !yield(id) {
				return
			}
		}
	}
}
