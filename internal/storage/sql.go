package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/schema"
)

var _ Store = (*SQLStore)(nil)

// SQLStore keeps one table per kind in Postgres or SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	nowFn   func() time.Time
}

// OpenSQL connects to dsn, verifies the connection and creates missing
// tables.
func OpenSQL(ctx context.Context, dsn string) (*SQLStore, error) {
	d, source, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d.name, err)
	}
	if d.name == "sqlite" {
		// A single connection keeps ":memory:" databases shared and
		// serializes writers.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", d.name, err)
	}

	s := &SQLStore{db: db, dialect: d, nowFn: func() time.Time { return time.Now().UTC() }}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.migrations() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) Backend() string { return s.dialect.name }

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) fail(op string, kind schema.Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// queryAll runs an unfiltered select and scans each row with scan.
func queryAll[T any](ctx context.Context, s *SQLStore, kind schema.Kind, query string, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query))
	if err != nil {
		return nil, s.fail("list", kind, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, s.fail("list", kind, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list", kind, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

const skillColumns = "id, name, category, proficiency"

func scanSkill(r rowScanner) (schema.Skill, error) {
	var sk schema.Skill
	err := r.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Proficiency)
	return sk, err
}

func (s *SQLStore) ListSkills(ctx context.Context) ([]schema.Skill, error) {
	return queryAll(ctx, s, schema.KindSkill, "SELECT "+skillColumns+" FROM skills", scanSkill)
}

func (s *SQLStore) CreateSkill(ctx context.Context, in schema.InsertSkill) (schema.Skill, error) {
	query := "INSERT INTO skills (name, category) VALUES (?, ?) RETURNING " + skillColumns
	args := []any{in.Name, in.Category}
	if in.Proficiency != nil {
		query = "INSERT INTO skills (name, category, proficiency) VALUES (?, ?, ?) RETURNING " + skillColumns
		args = append(args, *in.Proficiency)
	}
	sk, err := scanSkill(s.db.QueryRowContext(ctx, s.dialect.rebind(query), args...))
	if err != nil {
		return schema.Skill{}, s.fail("create", schema.KindSkill, err)
	}
	return sk, nil
}

const projectColumns = "id, title, description, technologies, link, image_url"

func (s *SQLStore) scanProject(r rowScanner) (schema.Project, error) {
	var (
		p         schema.Project
		link, img sql.NullString
	)
	techDest, tech := s.dialect.listDest()
	if err := r.Scan(&p.ID, &p.Title, &p.Description, techDest, &link, &img); err != nil {
		return schema.Project{}, err
	}
	p.Technologies = tech()
	p.Link = nullString(link)
	p.ImageURL = nullString(img)
	return p, nil
}

func (s *SQLStore) ListProjects(ctx context.Context) ([]schema.Project, error) {
	return queryAll(ctx, s, schema.KindProject, "SELECT "+projectColumns+" FROM projects", s.scanProject)
}

func (s *SQLStore) CreateProject(ctx context.Context, in schema.InsertProject) (schema.Project, error) {
	tech, err := s.dialect.listArg(in.Technologies)
	if err != nil {
		return schema.Project{}, s.fail("create", schema.KindProject, err)
	}
	query := s.dialect.rebind(`INSERT INTO projects (title, description, technologies, link, image_url)
		VALUES (?, ?, ?, ?, ?) RETURNING ` + projectColumns)
	p, err := s.scanProject(s.db.QueryRowContext(ctx, query, in.Title, in.Description, tech, nullable(in.Link), nullable(in.ImageURL)))
	if err != nil {
		return schema.Project{}, s.fail("create", schema.KindProject, err)
	}
	return p, nil
}

func (s *SQLStore) SetProjectLink(ctx context.Context, id int64, link string) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind("UPDATE projects SET link = ? WHERE id = ?"), link, id)
	if err != nil {
		return s.fail("update", schema.KindProject, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.fail("update", schema.KindProject, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const educationColumns = "id, degree, institution, year, description"

func scanEducation(r rowScanner) (schema.Education, error) {
	var (
		e    schema.Education
		desc sql.NullString
	)
	if err := r.Scan(&e.ID, &e.Degree, &e.Institution, &e.Year, &desc); err != nil {
		return schema.Education{}, err
	}
	e.Description = nullString(desc)
	return e, nil
}

func (s *SQLStore) ListEducation(ctx context.Context) ([]schema.Education, error) {
	return queryAll(ctx, s, schema.KindEducation, "SELECT "+educationColumns+" FROM education", scanEducation)
}

func (s *SQLStore) CreateEducation(ctx context.Context, in schema.InsertEducation) (schema.Education, error) {
	query := s.dialect.rebind(`INSERT INTO education (degree, institution, year, description)
		VALUES (?, ?, ?, ?) RETURNING ` + educationColumns)
	e, err := scanEducation(s.db.QueryRowContext(ctx, query, in.Degree, in.Institution, in.Year, nullable(in.Description)))
	if err != nil {
		return schema.Education{}, s.fail("create", schema.KindEducation, err)
	}
	return e, nil
}

const certificationColumns = "id, name, issuer, date"

func scanCertification(r rowScanner) (schema.Certification, error) {
	var c schema.Certification
	err := r.Scan(&c.ID, &c.Name, &c.Issuer, &c.Date)
	return c, err
}

func (s *SQLStore) ListCertifications(ctx context.Context) ([]schema.Certification, error) {
	return queryAll(ctx, s, schema.KindCertification, "SELECT "+certificationColumns+" FROM certifications", scanCertification)
}

func (s *SQLStore) CreateCertification(ctx context.Context, in schema.InsertCertification) (schema.Certification, error) {
	query := s.dialect.rebind("INSERT INTO certifications (name, issuer, date) VALUES (?, ?, ?) RETURNING " + certificationColumns)
	c, err := scanCertification(s.db.QueryRowContext(ctx, query, in.Name, in.Issuer, in.Date))
	if err != nil {
		return schema.Certification{}, s.fail("create", schema.KindCertification, err)
	}
	return c, nil
}

const publicationColumns = "id, title, publisher, description, date, link"

func scanPublication(r rowScanner) (schema.Publication, error) {
	var (
		p    schema.Publication
		link sql.NullString
	)
	if err := r.Scan(&p.ID, &p.Title, &p.Publisher, &p.Description, &p.Date, &link); err != nil {
		return schema.Publication{}, err
	}
	p.Link = nullString(link)
	return p, nil
}

func (s *SQLStore) ListPublications(ctx context.Context) ([]schema.Publication, error) {
	return queryAll(ctx, s, schema.KindPublication, "SELECT "+publicationColumns+" FROM publications", scanPublication)
}

func (s *SQLStore) CreatePublication(ctx context.Context, in schema.InsertPublication) (schema.Publication, error) {
	query := s.dialect.rebind(`INSERT INTO publications (title, publisher, description, date, link)
		VALUES (?, ?, ?, ?, ?) RETURNING ` + publicationColumns)
	p, err := scanPublication(s.db.QueryRowContext(ctx, query, in.Title, in.Publisher, in.Description, in.Date, nullable(in.Link)))
	if err != nil {
		return schema.Publication{}, s.fail("create", schema.KindPublication, err)
	}
	return p, nil
}

const messageColumns = "id, name, email, message, created_at"

func scanMessage(r rowScanner) (schema.Message, error) {
	var (
		m       schema.Message
		created sqlTime
	)
	if err := r.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &created); err != nil {
		return schema.Message{}, err
	}
	m.CreatedAt = created.t
	return m, nil
}

func (s *SQLStore) ListMessages(ctx context.Context) ([]schema.Message, error) {
	return queryAll(ctx, s, schema.KindMessage, "SELECT "+messageColumns+" FROM messages", scanMessage)
}

func (s *SQLStore) CreateMessage(ctx context.Context, in schema.InsertMessage) (schema.Message, error) {
	query := s.dialect.rebind("INSERT INTO messages (name, email, message, created_at) VALUES (?, ?, ?, ?) RETURNING " + messageColumns)
	m, err := scanMessage(s.db.QueryRowContext(ctx, query, in.Name, in.Email, in.Message, s.nowFn()))
	if err != nil {
		return schema.Message{}, s.fail("create", schema.KindMessage, err)
	}
	return m, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
