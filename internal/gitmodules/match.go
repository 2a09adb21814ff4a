package gitmodules

import (
	"path/filepath"
	"strings"
)

// Matcher decides whether a candidate submodule directory corresponds to a
// declared relative path.
type Matcher func(candidate, declared string) bool

// SuffixMatch is a plain string suffix test: "vendor/lib" matches
// "/repo/vendor/lib" but "lib" also matches "/repo/otherlib".
func SuffixMatch(candidate, declared string) bool {
	return strings.HasSuffix(candidate, declared)
}

// SegmentMatch only matches on whole path segments.
func SegmentMatch(candidate, declared string) bool {
	c := filepath.ToSlash(filepath.Clean(candidate))
	d := filepath.ToSlash(filepath.Clean(declared))
	return c == d || strings.HasSuffix(c, "/"+d)
}

// MatcherByName returns the matcher registered under name ("suffix" or "segment").
func MatcherByName(name string) (Matcher, bool) {
	switch name {
	case "", "suffix":
		return SuffixMatch, true
	case "segment":
		return SegmentMatch, true
	default:
		return nil, false
	}
}

// RecordFor returns the first record, in file order, whose path is a suffix
// of candidate.
func (f *File) RecordFor(candidate string) (Record, bool) {
	return f.Lookup(candidate, SuffixMatch)
}

// Lookup returns the first record, in file order, accepted by match.
func (f *File) Lookup(candidate string, match Matcher) (Record, bool) {
	if match == nil {
		match = SuffixMatch
	}
	for _, rec := range f.Records {
		if match(candidate, rec.Path) {
			return rec, true
		}
	}
	return Record{}, false
}
