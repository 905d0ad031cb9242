package extract

import (
	"regexp"

	"github.com/nao1215/urlsweep/internal/model"
)

// Extraction patterns per file category.
//
// The markdown patterns cover the three link forms that matter in practice:
// inline links, reference-style definitions at line start, and bare
// http(s) URLs bounded by whitespace or closing punctuation. The HTML
// patterns match href/src attribute values restricted to absolute http(s)
// targets, with the attribute name matched case-insensitively.
var (
	mdInlineLink = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)
	mdRefLink    = regexp.MustCompile(`(?m)^\[[^\]]+\]:\s*(\S+)`)
	mdBareURL    = regexp.MustCompile(`https?://[^\s\)<>\[\]{}"',;]+`)

	htmlHref = regexp.MustCompile(`(?i)href=["'](https?://[^"']+)["']`)
	htmlSrc  = regexp.MustCompile(`(?i)src=["'](https?://[^"']+)["']`)
)

// FromMarkdown extracts raw URLs from markdown content.
// Duplicates are retained; deduplication happens only after filtering and
// replacement, keyed by the canonical form.
func FromMarkdown(content string) []string {
	urls := make([]string, 0)

	for _, m := range mdInlineLink.FindAllStringSubmatch(content, -1) {
		urls = append(urls, m[1])
	}
	for _, m := range mdRefLink.FindAllStringSubmatch(content, -1) {
		urls = append(urls, m[1])
	}
	urls = append(urls, mdBareURL.FindAllString(content, -1)...)

	return urls
}

// FromHTML extracts raw URLs from HTML content.
func FromHTML(content string) []string {
	urls := make([]string, 0)

	for _, m := range htmlHref.FindAllStringSubmatch(content, -1) {
		urls = append(urls, m[1])
	}
	for _, m := range htmlSrc.FindAllStringSubmatch(content, -1) {
		urls = append(urls, m[1])
	}

	return urls
}

// FromFile applies the category's extraction rules to one scanned file.
// Generic files run both extractors and concatenate the results.
func FromFile(file model.ScannedFile) []string {
	switch file.Category {
	case model.CategoryMarkdown:
		return FromMarkdown(file.Content)
	case model.CategoryHTML:
		return FromHTML(file.Content)
	default:
		return append(FromMarkdown(file.Content), FromHTML(file.Content)...)
	}
}
