package db

import (
	"strconv"
	"strings"
)

// Dialect names a SQL backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Valid reports whether d is a supported dialect.
func (d Dialect) Valid() bool {
	return d == Postgres || d == SQLite
}

// Rebind rewrites "?" placeholders into the dialect's form. Queries are
// written with "?"; postgres needs "$1", "$2", and so on. Placeholders
// inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for i := range len(query) {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (d Dialect) gooseName() string {
	if d == SQLite {
		return "sqlite3"
	}
	return string(d)
}
