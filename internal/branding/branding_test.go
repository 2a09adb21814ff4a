package branding

import "testing"

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"git_path", "VCSXML_GIT_PATH"},
		{"LOG_LEVEL", "VCSXML_LOG_LEVEL"},
		{"home", "VCSXML_HOME"},
	}

	for _, tt := range tests {
		if got := EnvVar(tt.suffix); got != tt.want {
			t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}

func TestEmbeddedValues(t *testing.T) {
	if CLIName() != "vcsxml" {
		t.Errorf("CLIName() = %q, want %q", CLIName(), "vcsxml")
	}
	if ProjectFile() != ".vcsxml.yaml" {
		t.Errorf("ProjectFile() = %q, want %q", ProjectFile(), ".vcsxml.yaml")
	}
	if HomeDir() != ".vcsxml" {
		t.Errorf("HomeDir() = %q, want %q", HomeDir(), ".vcsxml")
	}
}
