// Package seed fills empty content collections with the portfolio's fixed
// records. Running it again is harmless: a kind that already has records is
// left alone.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/Zachkp/portfolio/internal/schema"
	"github.com/Zachkp/portfolio/internal/storage"
)

// ErrInProgress is returned by TryEnsure while another pass holds the seeder.
var ErrInProgress = errors.New("seeding already in progress")

// Seeder populates a store once per kind.
type Seeder struct {
	store  storage.Store
	logger *slog.Logger

	// sem holds a token while a pass runs.
	sem  chan struct{}
	done atomic.Bool
}

func New(store storage.Store, logger *slog.Logger) *Seeder {
	return &Seeder{store: store, logger: logger, sem: make(chan struct{}, 1)}
}

// Run seeds every empty content kind independently and applies the
// tournament project link correction. A failing kind does not stop the
// others; all failures are returned joined.
func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		kind schema.Kind
		run  func(context.Context) (int, error)
	}{
		{schema.KindSkill, func(ctx context.Context) (int, error) {
			return seedKind(ctx, s.store.ListSkills, s.store.CreateSkill, skills)
		}},
		{schema.KindProject, s.seedProjects},
		{schema.KindPublication, func(ctx context.Context) (int, error) {
			return seedKind(ctx, s.store.ListPublications, s.store.CreatePublication, publications)
		}},
		{schema.KindEducation, func(ctx context.Context) (int, error) {
			return seedKind(ctx, s.store.ListEducation, s.store.CreateEducation, education)
		}},
		{schema.KindCertification, func(ctx context.Context) (int, error) {
			return seedKind(ctx, s.store.ListCertifications, s.store.CreateCertification, certifications)
		}},
	}

	var errs []error
	for _, step := range steps {
		n, err := step.run(ctx)
		if err != nil {
			s.logger.Error("seeding failed", "kind", step.kind, "seeded", n, "error", err)
			errs = append(errs, fmt.Errorf("seed %s: %w", step.kind, err))
			continue
		}
		if n == 0 {
			s.logger.Debug("already seeded, skipping", "kind", step.kind)
			continue
		}
		s.logger.Info("seeded records", "kind", step.kind, "count", n)
	}
	return errors.Join(errs...)
}

// Ensure runs the seeder unless a previous call already succeeded. Callers
// racing on an unseeded store wait for the first one, or until ctx is done.
func (s *Seeder) Ensure(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.sem }()
	return s.ensure(ctx)
}

// TryEnsure is Ensure without the wait: if another pass is running it
// returns ErrInProgress immediately.
func (s *Seeder) TryEnsure(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
	default:
		if s.done.Load() {
			return nil
		}
		return ErrInProgress
	}
	defer func() { <-s.sem }()
	return s.ensure(ctx)
}

// ensure must be called holding the sem token.
func (s *Seeder) ensure(ctx context.Context) error {
	if s.done.Load() {
		return nil
	}
	if err := s.Run(ctx); err != nil {
		return err
	}
	s.done.Store(true)
	return nil
}

// Done reports whether a seeding pass has completed without error.
func (s *Seeder) Done() bool { return s.done.Load() }

func (s *Seeder) seedProjects(ctx context.Context) (int, error) {
	n, err := seedKind(ctx, s.store.ListProjects, s.store.CreateProject, projects)
	if err != nil {
		return n, err
	}
	return n, s.fixTournamentLink(ctx)
}

// fixTournamentLink points an existing tournament project at the published
// paper. It is the only in-place update the seeder performs.
func (s *Seeder) fixTournamentLink(ctx context.Context) error {
	list, err := s.store.ListProjects(ctx)
	if err != nil {
		return err
	}
	for _, p := range list {
		if !strings.Contains(p.Title, tournamentTitleMarker) {
			continue
		}
		if p.Link != nil && *p.Link == TournamentProjectLink {
			continue
		}
		if err := s.store.SetProjectLink(ctx, p.ID, TournamentProjectLink); err != nil {
			return fmt.Errorf("update tournament project link: %w", err)
		}
		s.logger.Info("updated tournament project link", "id", p.ID, "link", TournamentProjectLink)
	}
	return nil
}

// seedKind inserts records when list reports an empty collection and returns
// how many were inserted.
func seedKind[In, Out any](
	ctx context.Context,
	list func(context.Context) ([]Out, error),
	create func(context.Context, In) (Out, error),
	records []In,
) (int, error) {
	existing, err := list(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, r := range records {
		if _, err := create(ctx, r); err != nil {
			return i, err
		}
	}
	return len(records), nil
}
