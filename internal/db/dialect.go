package db

import (
	"strconv"
	"strings"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Dialect captures the few places where SQLite and PostgreSQL differ for the
// queries this module issues. Queries are written with ? placeholders.
type Dialect struct {
	Driver string
}

// DialectFor returns the dialect for a driver name.
func DialectFor(driver string) Dialect {
	return Dialect{Driver: driver}
}

// IsPostgres reports whether the dialect targets PostgreSQL.
func (d Dialect) IsPostgres() bool {
	return d.Driver == DriverPostgres
}

// Rebind rewrites ? placeholders to $n for PostgreSQL. Question marks inside
// single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.IsPostgres() {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ForUpdate returns the row-lock suffix for a SELECT. SQLite takes the write
// lock at BEGIN (see SQLiteDSN), so it needs none.
func (d Dialect) ForUpdate() string {
	if d.IsPostgres() {
		return " FOR UPDATE"
	}
	return ""
}
