// Package main provides the entry point for the urlsweep CLI.
//
// urlsweep checks documentation trees for broken links. It scans markdown
// and HTML files for http(s) URLs, verifies each unique URL concurrently,
// and reports every broken link with the files that reference it.
//
// Usage:
//
//	urlsweep [directory]
//	urlsweep --skip-domains internal.example docs/
//
// See --help for all available options.
package main

// main is the entry point for urlsweep.
func main() {
	Execute()
}
