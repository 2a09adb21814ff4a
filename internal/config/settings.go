package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vcsxml/vcsxml/internal/branding"
	"github.com/vcsxml/vcsxml/internal/gitmodules"
	"github.com/vcsxml/vcsxml/internal/ide"
	"github.com/vcsxml/vcsxml/internal/logging"
	"github.com/vcsxml/vcsxml/internal/project"
	"github.com/vcsxml/vcsxml/internal/vcs"
)

// Setting keys, shared by the project file, the user file and the environment.
const (
	KeyPath          = "path"
	KeyRemote        = "remote"
	KeyBranch        = "branch"
	KeyResetMode     = "sm_reset"
	KeyTrackRevision = "track_revision"
	KeyPull          = "pull"
	KeyOrder         = "order"
	KeyMatch         = "match"
	KeyVCS           = "vcs"
	KeyIDEFile       = "ide_file"
	KeyGitPath       = "git_path"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
)

// flagKeys maps command-line flag names to setting keys.
var flagKeys = map[string]string{
	"path":       KeyPath,
	"remote":     KeyRemote,
	"branch":     KeyBranch,
	"sm-reset":   KeyResetMode,
	"order":      KeyOrder,
	"match":      KeyMatch,
	"vcs":        KeyVCS,
	"ide-file":   KeyIDEFile,
	"log-level":  KeyLogLevel,
	"log-format": KeyLogFormat,
}

// Negated flags that switch a boolean setting off.
const (
	FlagNoRevision = "no-revision"
	FlagNoPull     = "no-pull"
)

// IsKnownKey reports whether key is a setting.
func IsKnownKey(key string) bool {
	switch key {
	case KeyRemote, KeyBranch, KeyResetMode, KeyTrackRevision, KeyPull, KeyOrder,
		KeyMatch, KeyVCS, KeyIDEFile, KeyGitPath, KeyLogLevel, KeyLogFormat:
		return true
	}
	return false
}

// Settings is the resolved configuration of one run.
type Settings struct {
	ProjectRoot   string // absolute
	ProjectFile   string // project settings file, empty when absent
	Remote        string
	Branch        string
	ResetMode     string
	TrackRevision bool
	Pull          bool
	Order         project.Order
	Match         string
	VCS           string
	IDEFile       string // absolute
	GitPath       string
	LogLevel      string
	LogFormat     string
}

// Matcher returns the configured declaration matcher.
func (s *Settings) Matcher() gitmodules.Matcher {
	m, _ := gitmodules.MatcherByName(s.Match)
	return m
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRemote, "origin")
	v.SetDefault(KeyResetMode, project.DefaultResetMode)
	v.SetDefault(KeyTrackRevision, true)
	v.SetDefault(KeyPull, true)
	v.SetDefault(KeyOrder, string(project.CoarseFirst))
	v.SetDefault(KeyMatch, "suffix")
	v.SetDefault(KeyVCS, ide.DefaultKind)
	v.SetDefault(KeyIDEFile, ide.DefaultFile)
	v.SetDefault(KeyGitPath, vcs.DefaultTool)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatConsole)
}

// Load resolves the settings from flags, positional args, environment and
// config files. The first positional argument, when present, is the project root.
func Load(flags *pflag.FlagSet, args []string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(fileType)
	if _, err := os.Stat(FilePath()); err == nil {
		v.SetConfigFile(FilePath())
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", FilePath(), err)
		}
	}

	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyGitPath, "GIT_PATH", "VCS_PATH", branding.EnvVar(KeyGitPath)); err != nil {
		return nil, fmt.Errorf("binding git path env: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	root, err := resolveRoot(v.GetString(KeyPath), args)
	if err != nil {
		return nil, err
	}

	s := &Settings{ProjectRoot: root}

	projectFile := filepath.Join(root, branding.ProjectFile())
	if _, err := os.Stat(projectFile); err == nil {
		if err := checkProjectFile(projectFile); err != nil {
			return nil, err
		}
		v.SetConfigFile(projectFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", projectFile, err)
		}
		s.ProjectFile = projectFile
	}

	s.Remote = v.GetString(KeyRemote)
	s.Branch = v.GetString(KeyBranch)
	s.ResetMode = v.GetString(KeyResetMode)
	s.TrackRevision = v.GetBool(KeyTrackRevision)
	s.Pull = v.GetBool(KeyPull)
	s.Match = v.GetString(KeyMatch)
	s.VCS = v.GetString(KeyVCS)
	s.GitPath = v.GetString(KeyGitPath)
	s.LogLevel = v.GetString(KeyLogLevel)
	s.LogFormat = v.GetString(KeyLogFormat)

	if flags != nil {
		if f := flags.Lookup(FlagNoRevision); f != nil && f.Changed && f.Value.String() == "true" {
			s.TrackRevision = false
		}
		if f := flags.Lookup(FlagNoPull); f != nil && f.Changed && f.Value.String() == "true" {
			s.Pull = false
		}
	}

	s.IDEFile = v.GetString(KeyIDEFile)
	if !filepath.IsAbs(s.IDEFile) {
		s.IDEFile = filepath.Join(root, filepath.FromSlash(s.IDEFile))
	}

	if s.Order, err = project.ParseOrder(v.GetString(KeyOrder)); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	if err := project.ValidateResetMode(s.ResetMode); err != nil {
		return err
	}
	if _, ok := gitmodules.MatcherByName(s.Match); !ok {
		return fmt.Errorf("invalid match mode %q: expected \"suffix\" or \"segment\"", s.Match)
	}
	if s.VCS == "" {
		return fmt.Errorf("vcs kind must not be empty")
	}
	switch s.LogFormat {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: expected %q or %q", s.LogFormat, logging.FormatConsole, logging.FormatJSON)
	}
	return nil
}

// resolveRoot picks the project root: positional argument, then the path
// setting, then the working directory.
func resolveRoot(path string, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		path = cwd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving project root %s: %w", path, err)
	}
	return abs, nil
}

// checkProjectFile validates the project file against the schema and turns
// schema issues into one error.
func checkProjectFile(path string) error {
	result, err := ValidateFile(path)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if result.Valid {
		return nil
	}

	lines := make([]string, len(result.Issues))
	for i, issue := range result.Issues {
		if issue.Path != "" {
			lines[i] = issue.Path + ": " + issue.Message
		} else {
			lines[i] = issue.Message
		}
	}
	return fmt.Errorf("%s has %d validation issue(s):\n  %s", path, len(result.Issues), strings.Join(lines, "\n  "))
}
