// Package gitmodules parses .gitmodules declaration files into records and
// looks records up by the filesystem path of a checked-out submodule.
package gitmodules
