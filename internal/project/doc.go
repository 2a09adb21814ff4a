// Package project discovers the git submodules checked out under a project
// root and reconciles them with their declarations. It runs the coarse
// project-level update (pull plus recursive submodule update) and the
// per-submodule branch checkout and revision reset, collecting one Result per
// submodule so a single failure never aborts the batch.
package project
