package repository

import (
	"strings"
)

// searchTerms splits a free-text query on whitespace and commas.
func searchTerms(q string) []string {
	return strings.Fields(strings.ReplaceAll(q, ",", " "))
}

// likePattern lowercases term, escapes LIKE wildcards and wraps it in %.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// termClause builds "(LOWER(a) LIKE ? OR LOWER(b) LIKE ? ...)" for one term
// against columns, plus its arguments. Works on Postgres and SQLite.
func termClause(term string, columns ...string) (string, []interface{}) {
	p := likePattern(term)
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, "LOWER(COALESCE("+col+", '')) LIKE ? ESCAPE '\\'")
		args = append(args, p)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}
