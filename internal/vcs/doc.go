// Package vcs is the gateway to the external git executable. Callers hand it
// an argument list and a working directory; it runs the tool with the
// inherited environment and reports a non-zero exit as a *CommandError.
// The Runner interface is the seam for substituting a test double.
package vcs
