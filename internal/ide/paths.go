package ide

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProjectDirToken stands for the project root in persisted directories.
const ProjectDirToken = "$PROJECT_DIR$"

// DefaultFile is the mapping document location relative to the project root.
const DefaultFile = ".idea/vcs.xml"

// DefaultKind is the VCS kind registered by default.
const DefaultKind = "git"

// ResolveDirectory turns a stored directory into an absolute path. Values
// starting with the placeholder are expanded against root; anything else is
// returned verbatim.
func ResolveDirectory(dir, root string) string {
	if !strings.HasPrefix(dir, ProjectDirToken) {
		return dir
	}
	expanded := filepath.FromSlash(strings.ReplaceAll(dir, ProjectDirToken, filepath.ToSlash(root)))
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return filepath.Clean(expanded)
	}
	return abs
}

// PlaceholderPath renders full relative to the placeholder, using forward
// slashes. Paths outside root are kept absolute.
func PlaceholderPath(full, root string) string {
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(full)
	}
	if rel == "." {
		return ProjectDirToken
	}
	return ProjectDirToken + "/" + filepath.ToSlash(rel)
}

// CanonicalKind returns the capitalized form the IDE writes, e.g. "git" → "Git".
func CanonicalKind(kind string) string {
	return cases.Title(language.Und).String(kind)
}
