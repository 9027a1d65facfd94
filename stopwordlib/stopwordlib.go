// Package stopwordlib provides the stop-word set excluded from frequency counts
package stopwordlib

import (
	"fmt"
	"strings"

	"github.com/mlombera94/harry-potter-text-analysis-part1/iolib"
)

/***************************************************************************************************************
****************************************************************************************************************
* Stop words ***************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// Pipe-joined so the list can be eyeballed and diffed against the yaml override
const baseStopWords = `a|and|be|have|i|in|of|that|the|to|with|from|is|on|up|for|should|even|why|by|during|we|could|but|about|as|or|this|at|not|all|other` +
	`|if|can|how|may|who|an|no|our|what|use|get|will|has|their|was|than|which|these|also|been|when|through|were|under|there|those|out|after|such|any|before` +
	`|here|only|some|its|where|into|like|would|against|between|most|so|over|because|now|while|since|however|non|without|among|both|another|still|just|way|very` +
	`|good|around|every|each|his|her|then|much|less|few|same|within|per|whether`

// Words carrying no weight in fiction prose: pronouns, auxiliaries, dialogue glue
const proseStopWords = `he|she|it|they|them|him|hers|theirs|you|your|yours|me|my|mine|us|ours|himself|herself|themselves|myself|yourself|itself` +
	`|said|says|did|do|does|done|am|are|being|had|got|went|came|back|down|off|again|once|never|ever|though|yet|really|quite|bit|lot` +
	`|t|s|d|ll|re|ve|m|don't|didn't|couldn't|wouldn't|shouldn't|wasn't|weren't|isn't|aren't|hadn't|hasn't|haven't|can't|won't|it's|he's|she's|that's|there's|what's|i'm|i've|i'll|i'd|you're|they're|we're`

// Set holds words excluded from frequency analysis. Lookups are by exact
// lowercase token.
type Set map[string]bool

// Default returns the built-in English stop-word set
func Default() Set {
	return FromPipes(baseStopWords + "|" + proseStopWords)
}

// New builds a set from the given words
func New(words ...string) Set {
	s := make(Set, len(words))
	s.Add(words...)
	return s
}

// FromPipes builds a set from a pipe-joined word list, the format the yaml
// config keeps stop words in
func FromPipes(joined string) Set {
	parts := strings.Split(joined, "|")
	s := make(Set, len(parts))
	s.Add(parts...)
	return s
}

// FromFile builds a set from a file w/ one word per line; blank lines and
// #-comments are skipped
func FromFile(path string) (Set, error) {
	content, err := iolib.File2string(path)
	if err != nil {
		return nil, fmt.Errorf("reading stop-word file: %w", err)
	}

	s := make(Set)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
	return s, nil
}

// Add inserts words into the set, lowercased; empty strings are ignored
func (s Set) Add(words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s[w] = true
	}
}

// Has reports whether the word is a stop word
func (s Set) Has(word string) bool {
	return s[strings.ToLower(word)]
}

// Merge returns a new set holding the union; neither input is modified
func (s Set) Merge(other Set) Set {
	merged := make(Set, len(s)+len(other))
	for w := range s {
		merged[w] = true
	}
	for w := range other {
		merged[w] = true
	}
	return merged
}

// Filter returns the tokens that are not stop words, preserving order.
// Filtering an already filtered slice is a no-op.
func (s Set) Filter(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if s.Has(t) {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
