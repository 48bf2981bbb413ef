package rsp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Result is a fully processed response file, ready to be rendered.
type Result struct {
	SearchPaths      []string
	KnownPrefixLibs  []string
	QuotedArchives   []string
	QuotedImportLibs []string
	OtherLibs        []string

	// Dropped counts input tokens of unrecognized shape.
	Dropped int
}

// Group returns the tokens written for g.
func (r *Result) Group(g Group) []string {
	switch g {
	case GroupSearchPaths:
		return r.SearchPaths
	case GroupPrefixLibs:
		return r.KnownPrefixLibs
	case GroupArchives:
		return r.QuotedArchives
	case GroupImportLibs:
		return r.QuotedImportLibs
	case GroupOtherLibs:
		return r.OtherLibs
	default:
		return nil
	}
}

// Options configures Plan and Rewrite. The zero value uses the OS
// filesystem, the default order and a no-op logger.
type Options struct {
	Fs     afero.Fs
	Order  Order
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if len(o.Order) == 0 {
		o.Order = DefaultOrder()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Process classifies content, normalizes and deduplicates each bucket, and
// partitions the library references against prefix.
func Process(fsys afero.Fs, content, prefix string, logger *zap.Logger) (*Result, error) {
	b := Classify(content)
	logger.Debug("classified tokens",
		zap.Int("library_refs", len(b.LibraryRefs)),
		zap.Int("search_paths", len(b.SearchPaths)),
		zap.Int("quoted_archives", len(b.QuotedArchives)),
		zap.Int("quoted_import_libs", len(b.QuotedImportLibs)),
		zap.Int("dropped", b.Dropped),
	)

	libs := KeepLast(b.LibraryRefs)
	parts, err := Partition(fsys, libs, prefix, logger)
	if err != nil {
		return nil, err
	}

	return &Result{
		SearchPaths:      KeepLast(NormalizePaths(b.SearchPaths)),
		KnownPrefixLibs:  parts.KnownPrefixLibs,
		QuotedArchives:   KeepLast(NormalizePaths(b.QuotedArchives)),
		QuotedImportLibs: KeepLast(NormalizePaths(b.QuotedImportLibs)),
		OtherLibs:        parts.OtherLibs,
		Dropped:          b.Dropped,
	}, nil
}

// Render writes each group of order as newline-joined tokens followed by a
// newline. Empty groups produce a bare newline.
func Render(r *Result, order Order) []byte {
	var buf bytes.Buffer
	for _, g := range order {
		buf.WriteString(strings.Join(r.Group(g), "\n"))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Plan reads filename and returns the processed result and the content that
// Rewrite would write, without modifying the file.
func Plan(filename, prefix string, opts Options) (*Result, []byte, error) {
	opts = opts.withDefaults()

	data, err := afero.ReadFile(opts.Fs, filename)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response file: %w", err)
	}

	result, err := Process(opts.Fs, string(data), prefix, opts.Logger)
	if err != nil {
		return nil, nil, err
	}

	opts.Logger.Debug("rendering groups", zap.Stringer("order", opts.Order))
	return result, Render(result, opts.Order), nil
}

// Rewrite processes filename and overwrites it in place. The file is
// truncated and rewritten; a failed write can leave it partially written.
func Rewrite(filename, prefix string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	result, out, err := Plan(filename, prefix, opts)
	if err != nil {
		return nil, err
	}

	if err := afero.WriteFile(opts.Fs, filename, out, 0644); err != nil {
		return nil, fmt.Errorf("writing response file: %w", err)
	}

	opts.Logger.Debug("rewrote response file",
		zap.String("file", filename),
		zap.Int("bytes", len(out)),
	)
	return result, nil
}
