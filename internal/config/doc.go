// Package config resolves the settings for one run. Values come, highest
// precedence first, from command-line flags, the environment, the project
// file (<root>/.vcsxml.yaml, validated against an embedded JSON schema), the
// user file (~/.vcsxml/config.yaml), and built-in defaults.
package config
