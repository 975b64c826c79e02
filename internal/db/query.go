package db

import (
	"strconv"
	"strings"
)

// Query is a SQL statement in the store's placeholder dialect plus its bound arguments.
type Query struct {
	SQL  string
	Args []any
}

// Dialect selects the placeholder syntax of a SQL backend.
type Dialect int

const (
	// DialectQuestion uses '?' placeholders (SQLite).
	DialectQuestion Dialect = iota
	// DialectDollar uses '$1', '$2', ... placeholders (PostgreSQL).
	DialectDollar
)

func (d Dialect) String() string {
	switch d {
	case DialectQuestion:
		return "question"
	case DialectDollar:
		return "dollar"
	default:
		return "unknown"
	}
}

// Rebind rewrites '?' placeholders into the dialect's syntax.
// Placeholders inside single-quoted literals are left untouched.
func (d Dialect) Rebind(sql string) string {
	if d != DialectDollar {
		return sql
	}
	var b strings.Builder
	b.Grow(len(sql) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
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

// NormalizeValue converts driver values into the types Querier promises.
func NormalizeValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}
