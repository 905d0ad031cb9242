package model

import "strings"

// Replacement is one ordered substring rewrite applied to validated URLs.
type Replacement struct {
	// From is the substring to search for.
	From string `json:"from" yaml:"from"`

	// To is the substring substituted for From.
	To string `json:"to" yaml:"to"`
}

// Replacements is an ordered list of rewrites.
//
// Design decision: We use an explicit slice rather than a map because
// replacement order is part of the contract (pairs apply in configuration
// order) and Go map iteration order is unspecified. The original ordering
// came from an insertion-ordered mapping; this type makes it explicit.
type Replacements []Replacement

// Set records a (from, to) pair. If from is already present its value is
// replaced in place, keeping the original position; otherwise the pair is
// appended. This mirrors how later configuration sources override earlier
// ones without reordering.
func (r Replacements) Set(from, to string) Replacements {
	for i := range r {
		if r[i].From == from {
			r[i].To = to
			return r
		}
	}
	return append(r, Replacement{From: from, To: to})
}

// Apply rewrites url with every pair in order. Each pair performs a single
// left-to-right substitution sweep; a To value containing a later From is
// substituted by that later pair, but no earlier pair is ever re-applied.
func (r Replacements) Apply(url string) string {
	for _, rep := range r {
		if rep.From == "" {
			continue
		}
		url = strings.ReplaceAll(url, rep.From, rep.To)
	}
	return url
}

// LinkSet holds the canonical URL set together with provenance: for each
// canonical URL, the ordered list of source files it was found in.
//
// URLs are post-replacement. Two distinct raw URLs that rewrite to the same
// canonical form share one entry and their provenance merges; this merge is
// expected. Duplicate source paths are retained so "found in N files" counts
// stay accurate.
type LinkSet struct {
	// urls holds canonical URLs in first-seen order.
	urls []string

	// sources maps each canonical URL to the files that reference it.
	sources map[string][]string
}

// NewLinkSet creates an empty LinkSet.
func NewLinkSet() *LinkSet {
	return &LinkSet{
		urls:    make([]string, 0),
		sources: make(map[string][]string),
	}
}

// Add records one occurrence of a canonical URL in the given source file.
func (ls *LinkSet) Add(url, source string) {
	if _, ok := ls.sources[url]; !ok {
		ls.urls = append(ls.urls, url)
	}
	ls.sources[url] = append(ls.sources[url], source)
}

// URLs returns the canonical URLs in first-seen order.
// The returned slice is a copy; mutating it does not affect the set.
func (ls *LinkSet) URLs() []string {
	out := make([]string, len(ls.urls))
	copy(out, ls.urls)
	return out
}

// Sources returns the ordered provenance list for a canonical URL.
func (ls *LinkSet) Sources(url string) []string {
	return ls.sources[url]
}

// Len returns the number of unique canonical URLs.
func (ls *LinkSet) Len() int {
	return len(ls.urls)
}
