package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/schema"
	"github.com/Zachkp/portfolio/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type counts struct {
	skills, projects, education, certifications, publications int
}

func countAll(t *testing.T, s storage.Store) counts {
	t.Helper()
	ctx := context.Background()
	sk, err := s.ListSkills(ctx)
	require.NoError(t, err)
	pr, err := s.ListProjects(ctx)
	require.NoError(t, err)
	ed, err := s.ListEducation(ctx)
	require.NoError(t, err)
	ce, err := s.ListCertifications(ctx)
	require.NoError(t, err)
	pu, err := s.ListPublications(ctx)
	require.NoError(t, err)
	return counts{len(sk), len(pr), len(ed), len(ce), len(pu)}
}

var fullySeeded = counts{
	skills:         len(skills),
	projects:       len(projects),
	education:      len(education),
	certifications: len(certifications),
	publications:   len(publications),
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	s := storage.NewMemStore()
	require.NoError(t, New(s, testLogger()).Run(context.Background()))
	assert.Equal(t, fullySeeded, countAll(t, s))
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemStore()
	seeder := New(s, testLogger())

	require.NoError(t, seeder.Run(ctx))
	first, err := s.ListSkills(ctx)
	require.NoError(t, err)

	require.NoError(t, seeder.Run(ctx))
	assert.Equal(t, fullySeeded, countAll(t, s))

	second, err := s.ListSkills(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_CompletesPartiallySeededStore(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemStore()
	_, err := s.CreateSkill(ctx, schema.InsertSkill{Name: "Go", Category: schema.CategoryBackend})
	require.NoError(t, err)

	require.NoError(t, New(s, testLogger()).Run(ctx))

	want := fullySeeded
	want.skills = 1
	assert.Equal(t, want, countAll(t, s))
}

func TestRun_CorrectsTournamentLinkOnce(t *testing.T) {
	ctx := context.Background()
	base := storage.NewMemStore()
	_, err := base.CreateProject(ctx, schema.InsertProject{
		Title:       "Agentic AI–Based Tournament Management System",
		Description: "old",
		Link:        schema.String("#"),
	})
	require.NoError(t, err)
	s := &linkCounter{Store: base}

	seeder := New(s, testLogger())
	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Run(ctx))

	list, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "projects kind was not empty, so nothing is inserted")
	require.NotNil(t, list[0].Link)
	assert.Equal(t, TournamentProjectLink, *list[0].Link)
	assert.Equal(t, 1, s.updates)
}

func TestRun_FreshSeedNeedsNoCorrection(t *testing.T) {
	s := &linkCounter{Store: storage.NewMemStore()}
	require.NoError(t, New(s, testLogger()).Run(context.Background()))
	assert.Zero(t, s.updates)
}

func TestRun_FailingKindDoesNotStopOthers(t *testing.T) {
	s := &failingSkills{Store: storage.NewMemStore()}
	err := New(s, testLogger()).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, errUnavailable)
	assert.Contains(t, err.Error(), "seed skill")

	got := countAll(t, s.Store)
	want := fullySeeded
	want.skills = 0
	assert.Equal(t, want, got)
}

func TestEnsure(t *testing.T) {
	ctx := context.Background()

	t.Run("runs once", func(t *testing.T) {
		s := &listCounter{Store: storage.NewMemStore()}
		seeder := New(s, testLogger())
		require.NoError(t, seeder.Ensure(ctx))
		calls := s.skillLists
		require.NoError(t, seeder.Ensure(ctx))
		assert.Equal(t, calls, s.skillLists)
		assert.True(t, seeder.Done())
	})

	t.Run("retries after failure", func(t *testing.T) {
		s := &failingSkills{Store: storage.NewMemStore()}
		seeder := New(s, testLogger())
		require.Error(t, seeder.Ensure(ctx))
		assert.False(t, seeder.Done())

		s.healed = true
		require.NoError(t, seeder.Ensure(ctx))
		assert.True(t, seeder.Done())
		assert.Equal(t, fullySeeded, countAll(t, s.Store))
	})
}

func TestTryEnsure(t *testing.T) {
	ctx := context.Background()

	t.Run("runs when idle", func(t *testing.T) {
		s := storage.NewMemStore()
		seeder := New(s, testLogger())
		require.NoError(t, seeder.TryEnsure(ctx))
		assert.True(t, seeder.Done())
		assert.Equal(t, fullySeeded, countAll(t, s))
	})

	t.Run("does not wait for a running pass", func(t *testing.T) {
		seeder := New(storage.NewMemStore(), testLogger())
		seeder.sem <- struct{}{}
		defer func() { <-seeder.sem }()

		assert.ErrorIs(t, seeder.TryEnsure(ctx), ErrInProgress)

		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, seeder.Ensure(waitCtx), context.DeadlineExceeded)
		assert.False(t, seeder.Done())
	})

	t.Run("nothing to do once seeded", func(t *testing.T) {
		seeder := New(storage.NewMemStore(), testLogger())
		require.NoError(t, seeder.Ensure(ctx))
		seeder.sem <- struct{}{}
		defer func() { <-seeder.sem }()
		assert.NoError(t, seeder.TryEnsure(ctx))
	})
}

func TestSeedRecordsAreValid(t *testing.T) {
	for _, r := range skills {
		assert.NoError(t, schema.Validate(r), r.Name)
	}
	for _, r := range projects {
		assert.NoError(t, schema.Validate(r), r.Title)
	}
	for _, r := range publications {
		assert.NoError(t, schema.Validate(r), r.Title)
	}
	for _, r := range education {
		assert.NoError(t, schema.Validate(r), r.Degree)
	}
	for _, r := range certifications {
		assert.NoError(t, schema.Validate(r), r.Name)
	}
}

var errUnavailable = errors.New("database unavailable")

type failingSkills struct {
	storage.Store
	healed bool
}

func (f *failingSkills) ListSkills(ctx context.Context) ([]schema.Skill, error) {
	if !f.healed {
		return nil, errUnavailable
	}
	return f.Store.ListSkills(ctx)
}

type linkCounter struct {
	storage.Store
	updates int
}

func (l *linkCounter) SetProjectLink(ctx context.Context, id int64, link string) error {
	l.updates++
	return l.Store.SetProjectLink(ctx, id, link)
}

type listCounter struct {
	storage.Store
	skillLists int
}

func (l *listCounter) ListSkills(ctx context.Context) ([]schema.Skill, error) {
	l.skillLists++
	return l.Store.ListSkills(ctx)
}
