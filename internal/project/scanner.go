package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/vcsxml/vcsxml/internal/gitmodules"
)

// markerName is the entry that marks a checked-out repository. Submodule
// checkouts carry it as a file pointing at the superproject's git dir.
const markerName = ".git"

// Scanner walks a project tree for submodule checkouts and declarations.
type Scanner struct {
	// Matcher pairs checkout directories with declared paths. Nil means
	// gitmodules.SuffixMatch.
	Matcher gitmodules.Matcher
	// ParseOptions returns the parse options for the declaration file found
	// in dir. Nil parses without options.
	ParseOptions func(dir string) []gitmodules.Option
	Logger       zerolog.Logger
}

// Scan walks root and returns one Submodule per checkout directory that
// matches a declaration. Declaration files are searched in discovery order
// and the first matching record wins. Checkouts without any matching
// declaration are dropped.
func (s *Scanner) Scan(root string) ([]Submodule, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	var (
		candidates []string
		decls      []*gitmodules.File
		parseErr   error
	)

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		switch d.Name() {
		case markerName:
			if d.IsDir() {
				return filepath.SkipDir
			}
			if d.Type().IsRegular() {
				candidates = append(candidates, filepath.Dir(path))
			}
		case gitmodules.FileName:
			if !d.Type().IsRegular() {
				return nil
			}
			var opts []gitmodules.Option
			if s.ParseOptions != nil {
				opts = s.ParseOptions(filepath.Dir(path))
			}
			f, err := gitmodules.Parse(path, opts...)
			if err != nil {
				parseErr = err
				return filepath.SkipAll
			}
			s.Logger.Debug().Str("file", path).Int("declarations", len(f.Records)).Msg("loaded declarations")
			decls = append(decls, f)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	if parseErr != nil {
		return nil, parseErr
	}

	match := s.Matcher
	if match == nil {
		match = gitmodules.SuffixMatch
	}

	var result []Submodule
	for _, dir := range candidates {
		sm, ok := bind(dir, decls, match)
		if !ok {
			s.Logger.Debug().Str("dir", dir).Msg("no declaration matches checkout, skipping")
			continue
		}
		result = append(result, sm)
	}

	return result, nil
}

// bind pairs a checkout directory with the first matching record.
func bind(dir string, decls []*gitmodules.File, match gitmodules.Matcher) (Submodule, bool) {
	for _, f := range decls {
		if rec, ok := f.Lookup(dir, match); ok {
			return Submodule{FullPath: dir, Config: rec, DeclaredIn: f.Path}, true
		}
	}
	return Submodule{}, false
}
