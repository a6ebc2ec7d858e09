package core

import (
	"regexp"
	"strings"
)

// QueryKind is the shape of a query string.
type QueryKind int

const (
	QueryUsername QueryKind = iota
	QueryEmail
)

func (k QueryKind) String() string {
	if k == QueryEmail {
		return "email"
	}
	return "username"
}

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&’*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,253}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,253}[a-zA-Z0-9])?)+$")

// KindOfQuery classifies a query as email-shaped or username-shaped.
func KindOfQuery(query string) QueryKind {
	if emailPattern.MatchString(query) {
		return QueryEmail
	}
	return QueryUsername
}

// IsEmail reports whether the query looks like an email address.
func IsEmail(query string) bool {
	return KindOfQuery(query) == QueryEmail
}

// NormalizeQueries trims queries and removes blanks and duplicates while keeping first-seen order.
func NormalizeQueries(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	queries := make([]string, 0, len(values))
	for _, value := range values {
		query := strings.TrimSpace(value)
		if query == "" {
			continue
		}
		if _, ok := seen[query]; ok {
			continue
		}
		seen[query] = struct{}{}
		queries = append(queries, query)
	}
	return queries
}
