package gitmodules

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"
)

// FileName is the name of a submodule declaration file.
const FileName = ".gitmodules"

// DefaultBranch is used for declarations without a branch key.
const DefaultBranch = "master"

// Record is one submodule declaration.
type Record struct {
	Name     string // submodule name from the section header
	Path     string // cleaned relative path
	URL      string
	Branch   string
	Revision string // commit registered in the superproject, empty unless resolved
}

// File is a parsed declaration file.
type File struct {
	Path    string
	Records []Record
}

// RevisionFunc resolves the commit registered for a declared submodule path.
type RevisionFunc func(path string) (string, error)

type parseOptions struct {
	revisions RevisionFunc
}

// Option configures Parse.
type Option func(*parseOptions)

// WithRevisions resolves Record.Revision for every declaration while parsing.
func WithRevisions(fn RevisionFunc) Option {
	return func(o *parseOptions) {
		o.revisions = fn
	}
}

var quotedName = regexp.MustCompile(`^\S+\s+"(.*)"$`)

// Parse reads a declaration file. Sections without a path key are skipped.
func Parse(path string, opts ...Option) (*File, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	text, err := readUnindented(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:          true,
		SpaceBeforeInlineComment: true,
	}, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	file := &File{Path: path}
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection || !sec.HasKey("path") {
			continue
		}

		rec := Record{
			Name:   sectionName(sec.Name()),
			Path:   filepath.Clean(sec.Key("path").String()),
			URL:    sec.Key("url").String(),
			Branch: DefaultBranch,
		}
		if sec.HasKey("branch") {
			rec.Branch = sec.Key("branch").String()
		}

		if o.revisions != nil {
			rev, err := o.revisions(filepath.ToSlash(rec.Path))
			if err != nil {
				return nil, fmt.Errorf("resolving revision of %s declared in %s: %w", rec.Path, path, err)
			}
			rec.Revision = rev
		}

		file.Records = append(file.Records, rec)
	}

	return file, nil
}

// readUnindented returns the file content with leading blanks stripped from
// every line. Nested declarations are often indented, which the INI parser
// would otherwise read as continuation lines.
func readUnindented(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		b.WriteString(strings.TrimLeft(scanner.Text(), " \t"))
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return b.String(), nil
}

// sectionName returns the quoted part of `submodule "name"`, or the raw name.
func sectionName(raw string) string {
	if m := quotedName.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}
