// Package revision resolves the commit a superproject has registered for a
// submodule path on its currently checked-out branch.
package revision
