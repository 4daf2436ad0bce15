// Package storage persists portfolio records behind one Store interface with
// an in-memory and a SQL implementation.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zachkp/portfolio/internal/schema"
)

// Store is the capability set the routes and the seeder depend on. Lists
// return every record of a kind; creates assign the id and return the stored
// record.
type Store interface {
	ListSkills(ctx context.Context) ([]schema.Skill, error)
	CreateSkill(ctx context.Context, in schema.InsertSkill) (schema.Skill, error)

	ListProjects(ctx context.Context) ([]schema.Project, error)
	CreateProject(ctx context.Context, in schema.InsertProject) (schema.Project, error)
	// SetProjectLink is a maintenance operation used by seeding only.
	SetProjectLink(ctx context.Context, id int64, link string) error

	ListEducation(ctx context.Context) ([]schema.Education, error)
	CreateEducation(ctx context.Context, in schema.InsertEducation) (schema.Education, error)

	ListCertifications(ctx context.Context) ([]schema.Certification, error)
	CreateCertification(ctx context.Context, in schema.InsertCertification) (schema.Certification, error)

	ListPublications(ctx context.Context) ([]schema.Publication, error)
	CreatePublication(ctx context.Context, in schema.InsertPublication) (schema.Publication, error)

	ListMessages(ctx context.Context) ([]schema.Message, error)
	CreateMessage(ctx context.Context, in schema.InsertMessage) (schema.Message, error)

	// Backend names the implementation, "memory", "sqlite" or "postgres".
	Backend() string
	Close() error
}

// Error is returned by the SQL store when the database rejects or cannot
// serve an operation. It unwraps to the driver error.
type Error struct {
	Op   string
	Kind schema.Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotFound is returned when a maintenance update matches no row.
var ErrNotFound = errors.New("storage: record not found")
