// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"strings"

	"gorm.io/gorm"
)

// Paginate limits a query to one page. A non-positive limit leaves the query unbounded,
// which is how export listings are expressed.
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		if offset < 0 {
			offset = 0
		}
		return db.Offset(offset).Limit(limit)
	}
}

// ContainsAny matches rows where any of columns contains term, case-insensitively.
// LIKE wildcards in term are escaped. Column names must come from code, never from input.
func ContainsAny(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// '!' is used as the LIKE escape character because MySQL and SQLite disagree on how a
// backslash inside a string literal is read.
var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
