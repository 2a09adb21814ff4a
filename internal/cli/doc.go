// Package cli defines the Cobra command tree for the vcsxml CLI. The root
// command performs the full run; each other file registers one subcommand.
// Commands resolve settings through internal/config and delegate the work to
// the project, ide and vcs packages, keeping only output formatting here.
package cli
