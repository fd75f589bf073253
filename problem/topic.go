package problem

import (
	"strings"

	internalstrings "github.com/amonks/contestsim/internal/strings"
)

// Topic is a problem tag that can narrow the contest pool.
type Topic struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var topics = []Topic{
	{Name: "Array", Slug: "array"},
	{Name: "String", Slug: "string"},
	{Name: "Dynamic Programming", Slug: "dynamic-programming"},
	{Name: "Math", Slug: "math"},
	{Name: "Tree", Slug: "tree"},
	{Name: "Graph", Slug: "graph"},
	{Name: "Hash Table", Slug: "hash-table"},
	{Name: "Binary Search", Slug: "binary-search"},
	{Name: "Greedy", Slug: "greedy"},
	{Name: "Stack", Slug: "stack"},
}

// Topics returns the selectable topic filters.
func Topics() []Topic {
	return append([]Topic(nil), topics...)
}

// LookupTopic finds a topic by slug or display name, ignoring case.
func LookupTopic(value string) (Topic, bool) {
	needle := internalstrings.NormalizeLowerTrimSpace(value)
	for _, topic := range topics {
		if topic.Slug == needle || strings.ToLower(topic.Name) == needle {
			return topic, true
		}
	}
	return Topic{}, false
}

// NormalizeTopics trims, lowercases and de-duplicates topic slugs while
// preserving their first-seen order. Known display names map to their slug.
func NormalizeTopics(values []string) []string {
	seen := make(map[string]bool, len(values))
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		slug := internalstrings.NormalizeLowerTrimSpace(value)
		if topic, ok := LookupTopic(value); ok {
			slug = topic.Slug
		}
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		normalized = append(normalized, slug)
	}
	return normalized
}
