package ide

import (
	"fmt"
	"io"
	"path/filepath"
)

// Report lists what a Sync did.
type Report struct {
	Added   []string // placeholder paths appended to the document
	Skipped []string // absolute paths that were already registered
}

// Sync registers every directory in dirs that the document at path does not
// already map for kind, then writes the document back. root is the project
// root the placeholder stands for.
func Sync(path, root string, dirs []string, kind string, out io.Writer) (*Report, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	registered := make(map[string]bool)
	for _, m := range doc.Mappings(kind) {
		registered[ResolveDirectory(m.Directory, root)] = true
	}

	report := &Report{}
	canonical := CanonicalKind(kind)
	for _, dir := range dirs {
		if registered[dir] {
			fmt.Fprintf(out, "Skip %q already registered\n", dir)
			report.Skipped = append(report.Skipped, dir)
			continue
		}

		rel := PlaceholderPath(dir, root)
		fmt.Fprintf(out, "Registering %s\n", rel)
		doc.Append(rel, canonical)
		report.Added = append(report.Added, rel)
	}

	fmt.Fprintln(out, "Saving changes")
	if err := doc.Save(); err != nil {
		return nil, err
	}
	return report, nil
}
