package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/namelens/handlescan/internal/core"
)

// ViewBy selects the grouping key.
type ViewBy string

const (
	ViewByQuery    ViewBy = "query"
	ViewByPlatform ViewBy = "platform"
)

// ParseViewBy validates a grouping key; empty means by query.
func ParseViewBy(value string) (ViewBy, error) {
	switch ViewBy(strings.ToLower(strings.TrimSpace(value))) {
	case "", ViewByQuery:
		return ViewByQuery, nil
	case ViewByPlatform:
		return ViewByPlatform, nil
	default:
		return "", fmt.Errorf("unsupported view: %s (expected query or platform)", value)
	}
}

func normalizeView(view ViewBy) ViewBy {
	if view == ViewByPlatform {
		return ViewByPlatform
	}
	return ViewByQuery
}

// Group is the set of responses sharing a query or a platform.
type Group struct {
	Key       string           `json:"key" yaml:"key"`
	Responses []*core.Response `json:"responses" yaml:"responses"`
}

// GroupResponses buckets responses by the view key, keeping groups in order of
// first appearance. Within a group, responses sort by (available, valid,
// success) descending, then by the other key ascending, ignoring case.
func GroupResponses(responses []*core.Response, view ViewBy) []Group {
	view = normalizeView(view)

	index := make(map[string]int)
	var groups []Group
	for _, response := range responses {
		if response == nil {
			continue
		}
		key := groupKey(response, view)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Responses = append(groups[i].Responses, response)
	}

	for i := range groups {
		sortResponses(groups[i].Responses, view)
	}
	return groups
}

// AvailableOnly keeps only available responses and drops groups left empty.
func AvailableOnly(groups []Group) []Group {
	filtered := make([]Group, 0, len(groups))
	for _, group := range groups {
		var kept []*core.Response
		for _, response := range group.Responses {
			if response.Class() == core.ClassAvailable {
				kept = append(kept, response)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered = append(filtered, Group{Key: group.Key, Responses: kept})
	}
	return filtered
}

func groupKey(response *core.Response, view ViewBy) string {
	if view == ViewByPlatform {
		return response.Platform.DisplayName()
	}
	return response.Query
}

// itemLabel is the value listed under a group header: the key not grouped by.
func itemLabel(response *core.Response, view ViewBy) string {
	if normalizeView(view) == ViewByPlatform {
		return response.Query
	}
	return response.Platform.DisplayName()
}

func sortResponses(responses []*core.Response, view ViewBy) {
	sort.SliceStable(responses, func(i, j int) bool {
		a, b := responses[i], responses[j]
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra > rb
		}
		return strings.ToLower(itemLabel(a, view)) < strings.ToLower(itemLabel(b, view))
	})
}

// rank orders (available, valid, success) as a three-bit number.
func rank(response *core.Response) int {
	r := 0
	if response.Available {
		r |= 4
	}
	if response.Valid {
		r |= 2
	}
	if response.Success {
		r |= 1
	}
	return r
}
