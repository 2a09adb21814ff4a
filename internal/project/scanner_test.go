package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vcsxml/vcsxml/internal/gitmodules"
)

// writeFile creates parent directories and writes content to root/rel.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// markSubmodule writes a .git marker file like git does for submodule checkouts.
func markSubmodule(t *testing.T, root, rel string) {
	t.Helper()
	writeFile(t, root, rel+"/.git", "gitdir: ../../.git/modules/"+rel+"\n")
}

func TestScanScenario(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, ".gitmodules", `[submodule "lib"]
	path = vendor/lib
	url = https://example.com/lib.git
	branch = dev
`)
	markSubmodule(t, root, "vendor/lib")

	subs, err := (&Scanner{}).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 submodule, got %d", len(subs))
	}

	sm := subs[0]
	if want := filepath.Join(root, "vendor", "lib"); sm.FullPath != want {
		t.Errorf("FullPath = %q, want %q", sm.FullPath, want)
	}
	if sm.Config.Branch != "dev" {
		t.Errorf("Branch = %q, want %q", sm.Config.Branch, "dev")
	}
	if sm.DeclaredIn != filepath.Join(root, ".gitmodules") {
		t.Errorf("DeclaredIn = %q", sm.DeclaredIn)
	}
}

func TestScanDropsUnmatchedMarkers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"lib\"]\npath = vendor/lib\n")
	markSubmodule(t, root, "vendor/lib")
	markSubmodule(t, root, "scratch/clone")

	subs, err := (&Scanner{}).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 submodule, got %d: %+v", len(subs), subs)
	}
	if subs[0].Config.Name != "lib" {
		t.Errorf("bound to %q, want lib", subs[0].Config.Name)
	}
}

func TestScanNoDeclarations(t *testing.T) {
	root := t.TempDir()
	markSubmodule(t, root, "vendor/lib")

	subs, err := (&Scanner{}).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("expected no submodules, got %d", len(subs))
	}
}

func TestScanIgnoresGitDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"lib\"]\npath = lib\n")
	// A .git directory (a plain clone, or the superproject's own) is not a marker,
	// and nothing inside it is scanned.
	writeFile(t, root, "lib/.git/HEAD", "ref: refs/heads/master\n")
	writeFile(t, root, ".git/modules/lib/.gitmodules", "this is not valid ini\n")

	subs, err := (&Scanner{}).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("expected no submodules for .git directories, got %d", len(subs))
	}
}

func TestScanNestedDeclarations(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"outer\"]\npath = outer\n")
	markSubmodule(t, root, "outer")
	writeFile(t, root, "outer/.gitmodules", "  [submodule \"inner\"]\n    path = deps/inner\n    branch = stable\n")
	markSubmodule(t, root, "outer/deps/inner")

	subs, err := (&Scanner{}).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submodules, got %d", len(subs))
	}

	byName := map[string]Submodule{}
	for _, sm := range subs {
		byName[sm.Config.Name] = sm
	}
	inner, ok := byName["inner"]
	if !ok {
		t.Fatal("inner submodule not found")
	}
	if inner.Config.Branch != "stable" {
		t.Errorf("inner Branch = %q, want stable", inner.Config.Branch)
	}
	if inner.DeclaredIn != filepath.Join(root, "outer", ".gitmodules") {
		t.Errorf("inner DeclaredIn = %q", inner.DeclaredIn)
	}
}

func TestScanFirstDeclarationFileWins(t *testing.T) {
	root := t.TempDir()
	// Both files declare a path that is a suffix of the checkout; the root file
	// is discovered first.
	writeFile(t, root, ".gitmodules", "[submodule \"root-decl\"]\npath = lib\nbranch = from-root\n")
	writeFile(t, root, "pkg/.gitmodules", "[submodule \"pkg-decl\"]\npath = lib\nbranch = from-pkg\n")
	markSubmodule(t, root, "pkg/lib")

	subs, err := (&Scanner{}).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 submodule, got %d", len(subs))
	}
	if subs[0].Config.Branch != "from-root" {
		t.Errorf("Branch = %q, want declaration discovered first", subs[0].Config.Branch)
	}
}

func TestScanSegmentMatcher(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"lib\"]\npath = lib\n")
	markSubmodule(t, root, "otherlib")

	subs, err := (&Scanner{}).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("suffix matching should bind otherlib, got %d", len(subs))
	}

	subs, err = (&Scanner{Matcher: gitmodules.SegmentMatch}).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("segment matching should not bind otherlib, got %d", len(subs))
	}
}

func TestScanParseOptions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"lib\"]\npath = lib\n")
	markSubmodule(t, root, "lib")

	var dirs []string
	s := &Scanner{ParseOptions: func(dir string) []gitmodules.Option {
		dirs = append(dirs, dir)
		return []gitmodules.Option{gitmodules.WithRevisions(func(string) (string, error) {
			return "cafe01", nil
		})}
	}}

	subs, err := s.Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != root {
		t.Errorf("ParseOptions called with %v, want [%s]", dirs, root)
	}
	if len(subs) != 1 || subs[0].Config.Revision != "cafe01" {
		t.Errorf("expected revision cafe01, got %+v", subs)
	}
}

func TestScanMalformedDeclaration(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"lib\"\npath = lib\n")

	if _, err := (&Scanner{}).Scan(root); err == nil {
		t.Fatal("expected error for malformed .gitmodules")
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := (&Scanner{}).Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}
