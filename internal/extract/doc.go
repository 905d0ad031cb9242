// Package extract pulls URLs out of documentation files and builds the
// canonical URL set.
//
// Extraction is deliberately pattern-based. The checker only needs absolute
// http(s) targets, and regular expressions recover those from markdown and
// HTML alike without the cost and strictness of a full parser; malformed
// documents still yield their well-formed links.
//
// The validity filter always evaluates the original extracted URL, never the
// post-replacement one. Filtering after replacement would change which links
// are ever checked, so the order filter-then-rewrite is a contract.
package extract
