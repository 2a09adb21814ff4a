package cli

import (
	"context"
	"fmt"

	"github.com/vcsxml/vcsxml/internal/ide"
	"github.com/vcsxml/vcsxml/internal/project"
)

// sync performs the full run: project update, submodule updates and IDE
// registration. Submodule failures are reported after the IDE file is saved.
func (s *session) sync(ctx context.Context) error {
	subs, results, err := project.Reconcile(ctx, s.project(), s.scanner(ctx, s.settings.TrackRevision), s.reconcileOptions(), s.out)
	if err != nil {
		return err
	}

	if err := s.register(subs); err != nil {
		return err
	}
	if err := s.finish(results); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Done")
	return nil
}

// register writes the IDE mappings for subs.
func (s *session) register(subs []project.Submodule) error {
	fmt.Fprintf(s.out, "IDE update %q\n", s.settings.IDEFile)
	report, err := ide.Sync(s.settings.IDEFile, s.settings.ProjectRoot, submoduleDirs(subs), s.settings.VCS, s.out)
	if err != nil {
		return fmt.Errorf("updating %s: %w", s.settings.IDEFile, err)
	}
	s.logger.Info().
		Int("added", len(report.Added)).
		Int("skipped", len(report.Skipped)).
		Msg("IDE mappings synced")
	return nil
}

// finish logs every failed submodule and returns their summary.
func (s *session) finish(results []project.Result) error {
	for _, r := range project.Failed(results) {
		s.logger.Error().Err(r.Err).Str("submodule", r.Submodule.Path()).Msg("submodule update failed")
	}
	return project.ResultsError(results)
}
