// Package vcstest provides a recording vcs.Runner for tests.
package vcstest

import (
	"context"
	"strings"
	"sync"
)

// Call is one recorded invocation.
type Call struct {
	Dir  string
	Args []string
}

// String renders the call as "dir: arg arg ...".
func (c Call) String() string {
	return c.Dir + ": " + strings.Join(c.Args, " ")
}

// Recorder records every invocation and answers from canned responses.
// Responses and failures are keyed by the space-joined argument list.
type Recorder struct {
	mu        sync.Mutex
	Calls     []Call
	Responses map[string]string
	Failures  map[string]error
	// FailDirs fails every invocation whose working directory is listed.
	FailDirs map[string]error
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		Responses: make(map[string]string),
		Failures:  make(map[string]error),
		FailDirs:  make(map[string]error),
	}
}

// Respond registers the stdout returned for args.
func (r *Recorder) Respond(output string, args ...string) {
	r.Responses[strings.Join(args, " ")] = output
}

// Fail registers an error returned for args.
func (r *Recorder) Fail(err error, args ...string) {
	r.Failures[strings.Join(args, " ")] = err
}

// Run records the call and returns the registered failure, if any.
func (r *Recorder) Run(_ context.Context, dir string, args ...string) error {
	_, err := r.record(dir, args)
	return err
}

// Output records the call and returns the registered response.
func (r *Recorder) Output(_ context.Context, dir string, args ...string) (string, error) {
	return r.record(dir, args)
}

func (r *Recorder) record(dir string, args []string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, Call{Dir: dir, Args: append([]string(nil), args...)})
	if err, ok := r.FailDirs[dir]; ok {
		return "", err
	}
	key := strings.Join(args, " ")
	if err, ok := r.Failures[key]; ok {
		return "", err
	}
	return r.Responses[key], nil
}

// Strings returns every recorded call rendered with Call.String.
func (r *Recorder) Strings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}
