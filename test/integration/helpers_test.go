//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const vcsXML = `<?xml version="1.0" encoding="UTF-8"?>
<project version="4">
  <component name="VcsDirectoryMappings">
    <mapping directory="$PROJECT_DIR$" vcs="Git" />
  </component>
</project>
`

// testEnv holds the repositories of one test.
type testEnv struct {
	LibOrigin   string // upstream of the submodule
	SuperOrigin string // upstream of the superproject
	Workspace   string // clone of SuperOrigin with the submodule checked out
}

// requireGit skips the test when no git executable is available and
// isolates git from the user's configuration.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	// Local paths are used as submodule URLs.
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")
	for _, key := range []string{"GIT_PATH", "VCS_PATH", "VCSXML_GIT_PATH"} {
		t.Setenv(key, "")
	}
}

// git runs git in dir and returns its trimmed stdout.
func git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		stderr := ""
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = string(ee.Stderr)
		}
		t.Fatalf("git %s in %s: %v\n%s", strings.Join(args, " "), dir, err, stderr)
	}
	return strings.TrimSpace(string(out))
}

// initRepo creates a repository on branch main with one commit.
func initRepo(t *testing.T, dir string) {
	t.Helper()
	git(t, dir, "init", "-q")
	git(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	writeFile(t, filepath.Join(dir, "README.md"), "# "+filepath.Base(dir)+"\n")
	git(t, dir, "add", "README.md")
	git(t, dir, "commit", "-q", "-m", "initial")
}

// setupTestEnv builds a superproject that tracks branch dev of a submodule
// at path lib, and clones it into a workspace with the submodule checked out.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	requireGit(t)

	env := &testEnv{
		LibOrigin:   filepath.Join(t.TempDir(), "lib"),
		SuperOrigin: filepath.Join(t.TempDir(), "super"),
		Workspace:   filepath.Join(t.TempDir(), "workspace"),
	}
	for _, dir := range []string{env.LibOrigin, env.SuperOrigin} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		initRepo(t, dir)
	}
	git(t, env.LibOrigin, "branch", "dev")

	git(t, env.SuperOrigin, "submodule", "add", "-q", "-b", "dev", env.LibOrigin, "lib")
	git(t, env.SuperOrigin, "commit", "-q", "-m", "add lib")

	git(t, filepath.Dir(env.Workspace), "clone", "-q", env.SuperOrigin, env.Workspace)
	git(t, env.Workspace, "submodule", "update", "-q", "--init")

	writeFile(t, filepath.Join(env.Workspace, ".idea", "vcs.xml"), vcsXML)
	return env
}

// commitFile adds a commit to repo on its current branch and returns the hash.
func commitFile(t *testing.T, repo, name, content string) string {
	t.Helper()
	writeFile(t, filepath.Join(repo, name), content)
	git(t, repo, "add", name)
	git(t, repo, "commit", "-q", "-m", "update "+name)
	return git(t, repo, "rev-parse", "HEAD")
}

// writeFile writes content to path, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
