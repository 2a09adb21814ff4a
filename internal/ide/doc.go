// Package ide keeps the IDE's VCS directory mappings (.idea/vcs.xml) in step
// with the submodules discovered in a project. Directories are persisted
// relative to the $PROJECT_DIR$ placeholder so the file stays portable.
package ide
