package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// ErrUnsupportedDSN is returned for connection strings that name neither
// Postgres nor SQLite.
var ErrUnsupportedDSN = errors.New("storage: unsupported database URL")

type dialect struct {
	name   string
	driver string

	serialPK string
	listType string
	timeType string
}

var (
	postgresDialect = dialect{
		name:     "postgres",
		driver:   "postgres",
		serialPK: "SERIAL PRIMARY KEY",
		listType: "TEXT[]",
		timeType: "TIMESTAMP",
	}
	sqliteDialect = dialect{
		name:     "sqlite",
		driver:   "sqlite",
		serialPK: "INTEGER PRIMARY KEY AUTOINCREMENT",
		listType: "TEXT",
		timeType: "DATETIME",
	}
)

// parseDSN picks the dialect for dsn and returns the driver data source.
func parseDSN(dsn string) (dialect, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgresDialect, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqliteDialect, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return sqliteDialect, dsn, nil
	}
	path, _, _ := strings.Cut(dsn, "?")
	for _, ext := range []string{".db", ".sqlite", ".sqlite3"} {
		if strings.HasSuffix(path, ext) {
			return sqliteDialect, dsn, nil
		}
	}
	return dialect{}, "", ErrUnsupportedDSN
}

// migrations returns the CREATE TABLE statements for d.
func (d dialect) migrations() []string {
	r := strings.NewReplacer("{{pk}}", d.serialPK, "{{list}}", d.listType, "{{time}}", d.timeType)
	out := make([]string, len(tableDDL))
	for i, ddl := range tableDDL {
		out[i] = r.Replace(ddl)
	}
	return out
}

var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS skills (
		id {{pk}},
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		proficiency INTEGER NOT NULL DEFAULT 100
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id {{pk}},
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		technologies {{list}},
		link TEXT,
		image_url TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS education (
		id {{pk}},
		degree TEXT NOT NULL,
		institution TEXT NOT NULL,
		year TEXT NOT NULL,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS certifications (
		id {{pk}},
		name TEXT NOT NULL,
		issuer TEXT NOT NULL,
		date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS publications (
		id {{pk}},
		title TEXT NOT NULL,
		publisher TEXT NOT NULL,
		description TEXT NOT NULL,
		date TEXT NOT NULL,
		link TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id {{pk}},
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at {{time}} NOT NULL
	)`,
}

// rebind rewrites ? placeholders into the dialect's form.
func (d dialect) rebind(query string) string {
	if d.name != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// listArg encodes a string list for the technologies column.
func (d dialect) listArg(list []string) (any, error) {
	if d.name == "postgres" {
		return pq.Array(list), nil
	}
	if list == nil {
		return nil, nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// listDest returns a scan target for the technologies column and a getter for
// the decoded value.
func (d dialect) listDest() (sql.Scanner, func() []string) {
	if d.name == "postgres" {
		arr := &pq.StringArray{}
		return arr, func() []string { return []string(*arr) }
	}
	l := &jsonList{}
	return l, func() []string { return l.v }
}

type jsonList struct{ v []string }

func (l *jsonList) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		l.v = nil
		return nil
	case string:
		return json.Unmarshal([]byte(s), &l.v)
	case []byte:
		return json.Unmarshal(s, &l.v)
	}
	return fmt.Errorf("technologies: unsupported column type %T", src)
}

// sqlTime scans timestamps whether the driver hands back a time.Time or the
// text SQLite stores for DATETIME columns.
type sqlTime struct{ t time.Time }

var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (st *sqlTime) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case time.Time:
		st.t = v.UTC()
		return nil
	case int64:
		st.t = time.Unix(v, 0).UTC()
		return nil
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("created_at: unsupported column type %T", src)
	}
	for _, layout := range sqliteTimeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			st.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("created_at: cannot parse %q", text)
}
