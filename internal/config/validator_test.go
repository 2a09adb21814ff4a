package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"all keys", `remote: upstream
branch: develop
sm_reset: hard
track_revision: false
pull: true
order: fine-first
match: segment
vcs: git
ide_file: .idea/vcs.xml
git_path: /usr/bin/git
log_level: debug
log_format: json
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.data))
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if !result.Valid {
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
				t.Fatal("expected valid")
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{"bad reset mode", "sm_reset: nuke\n", "/sm_reset"},
		{"bad order", "order: sideways\n", "/order"},
		{"wrong type", "pull: maybe\n", "/pull"},
		{"empty remote", "remote: \"\"\n", "/remote"},
		{"unknown key", "colour: blue\n", ""},
		{"not a mapping", "- a\n- b\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.data))
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid")
			}
			if len(result.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}
			if tt.wantPath == "" {
				return
			}
			for _, issue := range result.Issues {
				if issue.Path == tt.wantPath {
					if issue.Message == "" || issue.Keyword == "" {
						t.Errorf("issue at %s missing fields: %+v", issue.Path, issue)
					}
					return
				}
			}
			t.Errorf("no issue at %s: %+v", tt.wantPath, result.Issues)
		})
	}
}

func TestValidate_BadYAML(t *testing.T) {
	if _, err := Validate([]byte("remote: [unclosed\n")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestValidateFile_NotFound(t *testing.T) {
	if _, err := ValidateFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vcsxml.yaml")
	if err := os.WriteFile(path, []byte("branch: main\n"), 0644); err != nil {
		t.Fatal(err)
	}
	result, err := ValidateFile(path)
	if err != nil {
		t.Fatalf("ValidateFile() error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %+v", result.Issues)
	}
}
