// Package rsp rewrites linker response files. It classifies the whitespace
// separated tokens of a response file into search paths, library references,
// quoted static archives and quoted import libraries, normalizes and
// deduplicates them (last occurrence wins), splits the library references by
// whether the toolchain prefix ships a matching static archive, and writes
// the groups back in a configurable order.
package rsp
