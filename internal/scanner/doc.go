// Package scanner discovers documentation files under a root directory.
//
// The walk prunes well-known dependency and build directories, excludes
// configured filenames, and classifies the remaining files by extension into
// markdown, html, or generic categories. Classification is exclusive and
// priority-ordered: the markdown pattern list is consulted first, then html,
// then generic, and the first list with a matching suffix wins.
//
// File content is decoded permissively: byte sequences that are not valid
// UTF-8 are replaced with U+FFFD instead of failing the read. A file that
// cannot be read produces a warning and is skipped; the scan continues.
package scanner
