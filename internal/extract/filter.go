package extract

import (
	"strings"

	"github.com/nao1215/urlsweep/internal/model"
)

// builtinSkips are substrings that always disqualify a URL: loopback hosts
// and the reserved documentation domains. Matched case-insensitively against
// the whole URL.
var builtinSkips = []string{
	"localhost",
	"127.0.0.1",
	"0.0.0.0",
	"example.com",
	"example.org",
}

// Filter decides which raw URLs are eligible for checking and rewrites the
// eligible ones into their canonical form.
type Filter struct {
	// skipDomains are lowercase substrings matched against the extracted
	// domain.
	skipDomains []string

	// skipURLs are substrings matched against the full URL.
	skipURLs []string

	// replacements are applied, in order, to URLs that passed the filter.
	replacements model.Replacements
}

// NewFilter creates a Filter from the configured skip sets and replacements.
func NewFilter(skipDomains, skipURLs []string, replacements model.Replacements) *Filter {
	return &Filter{
		skipDomains:  skipDomains,
		skipURLs:     skipURLs,
		replacements: replacements,
	}
}

// Domain extracts the lowercase domain of a URL: strip the scheme prefix,
// take the segment up to the first '/', and strip any trailing ':port'.
func Domain(url string) string {
	if _, rest, ok := strings.Cut(url, "://"); ok {
		url = rest
	}
	domain, _, _ := strings.Cut(url, "/")
	domain, _, _ = strings.Cut(domain, ":")
	return strings.ToLower(domain)
}

// IsValid reports whether a raw URL is eligible for checking.
// It always receives the original extracted URL; replacements have not been
// applied yet and must not influence eligibility.
func (f *Filter) IsValid(url string) bool {
	// Relative links, anchors, and non-http protocols are out of scope.
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}

	lower := strings.ToLower(url)
	for _, skip := range builtinSkips {
		if strings.Contains(lower, skip) {
			return false
		}
	}

	if len(f.skipDomains) > 0 {
		domain := Domain(url)
		for _, skip := range f.skipDomains {
			if strings.Contains(domain, skip) {
				return false
			}
		}
	}

	for _, skip := range f.skipURLs {
		if strings.Contains(url, skip) {
			return false
		}
	}

	return true
}

// Canonicalize applies every replacement pair, in configuration order, to a
// URL that passed IsValid. Single sweep: the output of one pair may feed a
// later pair but is never fed back to an earlier one.
func (f *Filter) Canonicalize(url string) string {
	return f.replacements.Apply(url)
}

// Collect runs the full filter-and-rewrite stage over all scanned files,
// returning the canonical link set with provenance.
//
// Files are processed in scan order and URLs in extraction order, so the
// link set's first-seen ordering is deterministic. Every valid occurrence
// appends its source file to the canonical URL's provenance, even when the
// same file already appears.
func (f *Filter) Collect(files []model.ScannedFile) *model.LinkSet {
	links := model.NewLinkSet()
	for _, file := range files {
		for _, raw := range FromFile(file) {
			if !f.IsValid(raw) {
				continue
			}
			links.Add(f.Canonicalize(raw), file.Path)
		}
	}
	return links
}
