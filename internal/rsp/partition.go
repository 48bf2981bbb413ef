package rsp

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Partitioned holds the library references split by where their static
// archive lives.
type Partitioned struct {
	// KnownPrefixLibs have a lib<name>.a under <prefix>/lib.
	KnownPrefixLibs []string
	OtherLibs       []string
}

// ArchivePattern returns the glob pattern probed for a library reference,
// e.g. "-lsigrok" under "/opt/x" becomes "/opt/x/lib/libsigrok.a".
func ArchivePattern(prefix, ref string) string {
	name := strings.TrimPrefix(ref, libraryMarker)
	return prefix + "/lib/lib" + name + ".a"
}

// Partition checks each reference against the prefix library directory and
// appends the unmodified token to the matching group, preserving input order.
func Partition(fsys afero.Fs, refs []string, prefix string, logger *zap.Logger) (Partitioned, error) {
	var p Partitioned
	for _, ref := range refs {
		pattern := ArchivePattern(prefix, ref)
		found, err := archiveExists(fsys, pattern)
		if err != nil {
			return Partitioned{}, fmt.Errorf("probing %s: %w", pattern, err)
		}

		logger.Debug("probed library archive",
			zap.String("ref", ref),
			zap.String("pattern", pattern),
			zap.Bool("found", found),
		)

		if found {
			p.KnownPrefixLibs = append(p.KnownPrefixLibs, ref)
		} else {
			p.OtherLibs = append(p.OtherLibs, ref)
		}
	}
	return p, nil
}

// archiveExists reports whether pattern matches at least one file. A library
// name that does not form a valid pattern, such as "bad[", is looked up as a
// literal file name instead.
func archiveExists(fsys afero.Fs, pattern string) (bool, error) {
	matches, err := afero.Glob(fsys, pattern)
	if errors.Is(err, filepath.ErrBadPattern) {
		return literalExists(fsys, pattern)
	}
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func literalExists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
