package vcs

// Argument lists for every git invocation the tool makes.

// PullArgs returns `pull [remote branch]`. The remote is only passed together
// with a branch.
func PullArgs(remote, branch string) []string {
	args := []string{"pull"}
	if branch != "" {
		if remote == "" {
			remote = "origin"
		}
		args = append(args, remote, branch)
	}
	return args
}

// SubmoduleUpdateArgs returns the recursive submodule update used as the coarse sync.
func SubmoduleUpdateArgs() []string {
	return []string{"submodule", "update", "--init", "--recursive", "--merge"}
}

// CheckoutArgs returns `checkout <branch>`.
func CheckoutArgs(branch string) []string {
	return []string{"checkout", branch}
}

// ResetArgs returns `reset --<mode> <revision>`.
func ResetArgs(mode, revision string) []string {
	return []string{"reset", "--" + mode, revision}
}

// BranchArgs lists local branches.
func BranchArgs() []string {
	return []string{"branch"}
}

// LsTreeArgs lists the tree entry for path at the given revision.
func LsTreeArgs(revision, path string) []string {
	return []string{"ls-tree", revision, path}
}

// VersionArgs returns `--version`.
func VersionArgs() []string {
	return []string{"--version"}
}
