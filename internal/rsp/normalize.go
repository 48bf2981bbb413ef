package rsp

import "regexp"

var (
	separatorRun = regexp.MustCompile(`/+`)
	parentDir    = regexp.MustCompile(`/[^/]+/\.\./`)
)

// NormalizePath collapses runs of '/' and then removes "/<segment>/../"
// occurrences in a single left-to-right pass. The pass is not repeated, so
// chained parent references such as "/a/b/../../c" are only partly resolved
// ("/a/../c"). Callers rely on that exact output; do not loop here.
func NormalizePath(tok string) string {
	tok = separatorRun.ReplaceAllString(tok, "/")
	return parentDir.ReplaceAllString(tok, "/")
}

// NormalizePaths applies NormalizePath to every token and returns a new slice.
func NormalizePaths(toks []string) []string {
	if toks == nil {
		return nil
	}
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = NormalizePath(tok)
	}
	return out
}
