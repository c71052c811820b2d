// Package author provides author name parsing and matching for search queries.
package author

import (
	"strings"

	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/thai"
)

// Query represents a parsed author search query.
type Query struct {
	First string // Given names (may be empty for surname-only queries)
	Last  string // Family name, or the whole name for Thai queries
	Thai  bool
}

// ParseQuery parses an author search string into a structured Query.
//
// Supported formats:
//   - "Yu"           → last="Yu" (single word = last name only)
//   - "Timothy Yu"   → first="Timothy", last="Yu" (space-separated = First Last)
//   - "Yu, Timothy"  → first="Timothy", last="Yu" (comma = Last, First)
//   - "สมชาย ใจดี"   → matched against the whole Thai name
//
// Names are trimmed but case is preserved (matching is case-insensitive).
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}
	if thai.IsThai(input) {
		return Query{Last: strings.Join(strings.Fields(input), " "), Thai: true}
	}

	// Check for comma format: "Last, First"
	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.TrimSpace(input[:idx])
		first := strings.TrimSpace(input[idx+1:])
		return Query{First: first, Last: last}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Query{Last: parts[0]}
	}

	// "Timothy C Yu" → first="Timothy C", last="Yu"
	last := parts[len(parts)-1]
	first := strings.Join(parts[:len(parts)-1], " ")
	return Query{First: first, Last: last}
}

// Matches checks if the query matches an author string as stored on a
// reference ("Given Family" or "Family, Given").
//
// Matching rules:
//   - Last name: case-insensitive exact match (required)
//   - First name: case-insensitive prefix match (if query has first name)
//   - Thai: the query must appear within the full name
//
// This enables "Tim Yu" to match "Timothy C Yu" while preventing
// "Yu" from matching "Yujia" (since "Yu" is not Yujia's last name).
func (q Query) Matches(author string) bool {
	name := reference.ParseName(author)

	if q.Thai || name.Thai {
		return q.Thai && name.Thai && strings.Contains(strings.Join(strings.Fields(name.Family), " "), q.Last)
	}

	if !strings.EqualFold(q.Last, name.Family) {
		return false
	}
	if q.First == "" {
		return true
	}
	return strings.HasPrefix(
		strings.ToLower(strings.Join(name.Given, " ")),
		strings.ToLower(q.First),
	)
}

// MatchesAny checks if the query matches any author in the list.
func (q Query) MatchesAny(authors []string) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch checks if all queries match at least one author each.
// This implements AND logic for multiple author filters.
func AllMatch(queries []Query, authors []string) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}

// ParseQueries parses each non-blank input.
func ParseQueries(inputs []string) []Query {
	var queries []Query
	for _, in := range inputs {
		if q := ParseQuery(in); q.Last != "" {
			queries = append(queries, q)
		}
	}
	return queries
}

// Filter keeps the references whose authors satisfy every query.
func Filter(refs []reference.Reference, queries []Query) []reference.Reference {
	if len(queries) == 0 {
		return refs
	}
	out := refs[:0:0]
	for _, ref := range refs {
		if AllMatch(queries, ref.Authors) {
			out = append(out, ref)
		}
	}
	return out
}
