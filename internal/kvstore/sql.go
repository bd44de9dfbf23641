package kvstore

import (
	"fmt"
	"strings"
)

// inClauseQuery appends an IN (...) clause with one "?" placeholder per key.
func inClauseQuery(prefix string, keys []string) (string, []any) {
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = "?"
		args[i] = k
	}
	return prefix + " (" + strings.Join(placeholders, ", ") + ")", args
}

// inClauseQueryPg is the PostgreSQL variant using numbered placeholders.
func inClauseQueryPg(prefix string, keys []string) (string, []any) {
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = k
	}
	return prefix + " (" + strings.Join(placeholders, ", ") + ")", args
}
