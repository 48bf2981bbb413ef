package rsp

import "strings"

const (
	libraryMarker    = "-l"
	searchPathMarker = "-L"
	quote            = `"`
	archiveSuffix    = `.a"`
	importLibSuffix  = `dll.a"`
)

// Buckets holds the classified tokens of a response file in input order.
type Buckets struct {
	LibraryRefs      []string
	SearchPaths      []string
	QuotedArchives   []string
	QuotedImportLibs []string

	// Dropped counts tokens that matched no recognized shape.
	Dropped int
}

// Classify splits content on whitespace and sorts every token into exactly
// one bucket. Tokens of any other shape are dropped.
func Classify(content string) Buckets {
	var b Buckets
	for _, tok := range strings.Fields(content) {
		switch {
		case strings.HasPrefix(tok, libraryMarker):
			b.LibraryRefs = append(b.LibraryRefs, tok)
		case strings.HasPrefix(tok, searchPathMarker):
			b.SearchPaths = append(b.SearchPaths, tok)
		case isQuoted(tok, importLibSuffix):
			b.QuotedImportLibs = append(b.QuotedImportLibs, tok)
		case isQuoted(tok, archiveSuffix):
			b.QuotedArchives = append(b.QuotedArchives, tok)
		default:
			b.Dropped++
		}
	}
	return b
}

// isQuoted reports whether tok opens with a double quote and the rest of it
// ends with suffix (which carries the closing quote).
func isQuoted(tok, suffix string) bool {
	if !strings.HasPrefix(tok, quote) {
		return false
	}
	return strings.HasSuffix(tok[len(quote):], suffix)
}
