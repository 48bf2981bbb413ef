// Package layout handles parsing and validation of layout files, the YAML
// documents that override the order in which a rewritten response file's
// groups are written. Layout files are checked against an embedded JSON
// Schema and their format version must be compatible with 1.x.
package layout
