package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/schema"
)

var _ Store = (*MemStore)(nil)

// MemStore keeps every kind in an insertion-ordered slice with its own id
// counter. Nothing survives the process.
type MemStore struct {
	mu sync.RWMutex

	skills         []schema.Skill
	projects       []schema.Project
	education      []schema.Education
	certifications []schema.Certification
	publications   []schema.Publication
	messages       []schema.Message

	skillID, projectID, educationID, certificationID, publicationID, messageID int64

	nowFn func() time.Time
}

// NewMemStore returns an empty store stamping messages with the UTC wall
// clock.
func NewMemStore() *MemStore {
	return NewMemStoreWithClock(func() time.Time { return time.Now().UTC() })
}

// NewMemStoreWithClock returns an empty store using now for message
// timestamps.
func NewMemStoreWithClock(now func() time.Time) *MemStore {
	return &MemStore{nowFn: now}
}

func (s *MemStore) Backend() string { return "memory" }

func (s *MemStore) Close() error { return nil }

func (s *MemStore) ListSkills(context.Context) ([]schema.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(s.skills), nil
}

func (s *MemStore) CreateSkill(_ context.Context, in schema.InsertSkill) (schema.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skillID++
	skill := schema.Skill{
		ID:          s.skillID,
		Name:        in.Name,
		Category:    in.Category,
		Proficiency: schema.DefaultProficiency,
	}
	if in.Proficiency != nil {
		skill.Proficiency = *in.Proficiency
	}
	s.skills = append(s.skills, skill)
	return skill, nil
}

func (s *MemStore) ListProjects(context.Context) ([]schema.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]schema.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = cloneProject(p)
	}
	return out, nil
}

func (s *MemStore) CreateProject(_ context.Context, in schema.InsertProject) (schema.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectID++
	project := cloneProject(schema.Project{
		ID:           s.projectID,
		Title:        in.Title,
		Description:  in.Description,
		Technologies: in.Technologies,
		Link:         in.Link,
		ImageURL:     in.ImageURL,
	})
	s.projects = append(s.projects, project)
	return cloneProject(project), nil
}

func (s *MemStore) SetProjectLink(_ context.Context, id int64, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Link = &link
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemStore) ListEducation(context.Context) ([]schema.Education, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(s.education), nil
}

func (s *MemStore) CreateEducation(_ context.Context, in schema.InsertEducation) (schema.Education, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.educationID++
	edu := schema.Education{
		ID:          s.educationID,
		Degree:      in.Degree,
		Institution: in.Institution,
		Year:        in.Year,
		Description: cloneString(in.Description),
	}
	s.education = append(s.education, edu)
	return edu, nil
}

func (s *MemStore) ListCertifications(context.Context) ([]schema.Certification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(s.certifications), nil
}

func (s *MemStore) CreateCertification(_ context.Context, in schema.InsertCertification) (schema.Certification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certificationID++
	cert := schema.Certification{ID: s.certificationID, Name: in.Name, Issuer: in.Issuer, Date: in.Date}
	s.certifications = append(s.certifications, cert)
	return cert, nil
}

func (s *MemStore) ListPublications(context.Context) ([]schema.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(s.publications), nil
}

func (s *MemStore) CreatePublication(_ context.Context, in schema.InsertPublication) (schema.Publication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publicationID++
	pub := schema.Publication{
		ID:          s.publicationID,
		Title:       in.Title,
		Publisher:   in.Publisher,
		Description: in.Description,
		Date:        in.Date,
		Link:        cloneString(in.Link),
	}
	s.publications = append(s.publications, pub)
	return pub, nil
}

func (s *MemStore) ListMessages(context.Context) ([]schema.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneList(s.messages), nil
}

func (s *MemStore) CreateMessage(_ context.Context, in schema.InsertMessage) (schema.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID++
	msg := schema.Message{
		ID:        s.messageID,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.nowFn(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

// cloneList copies the slice header so callers never alias the backing
// array. Pointer fields are shared; stored records are never mutated in place
// except through SetProjectLink, which swaps the pointer.
func cloneList[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneProject(p schema.Project) schema.Project {
	p.Technologies = slices.Clone(p.Technologies)
	p.Link = cloneString(p.Link)
	p.ImageURL = cloneString(p.ImageURL)
	return p
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
