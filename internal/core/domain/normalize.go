package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// NormalizeTags trims, drops empties and case-insensitive duplicates.
// Over-long tags are a caller error.
func NormalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return nil, NewValidationError("tags", "tag too long")
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}

// NormalizeMembers trims and deduplicates member ids case-insensitively,
// preserving first-seen casing and order.
func NormalizeMembers(members []string) []string {
	out := make([]string, 0, len(members))
	seen := make(map[string]struct{}, len(members))
	for _, member := range members {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		key := strings.ToLower(member)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, member)
	}
	return out
}

// NormalizeSubtasks drops entries with empty titles.
func NormalizeSubtasks(subtasks []Subtask) []Subtask {
	out := make([]Subtask, 0, len(subtasks))
	for _, st := range subtasks {
		title := strings.TrimSpace(st.Title)
		if title == "" {
			continue
		}
		out = append(out, Subtask{Title: title, Completed: st.Completed})
	}
	return out
}

// NormalizeDependencies keeps well-formed, unique task ids and strips any
// self reference so a task can never depend on itself.
func NormalizeDependencies(deps []string, selfID string) []string {
	out := make([]string, 0, len(deps))
	seen := make(map[string]struct{}, len(deps))
	for _, dep := range deps {
		dep = strings.TrimSpace(dep)
		if dep == "" || dep == selfID {
			continue
		}
		if _, err := uuid.Parse(dep); err != nil {
			continue
		}
		if _, ok := seen[dep]; ok {
			continue
		}
		seen[dep] = struct{}{}
		out = append(out, dep)
	}
	return out
}
