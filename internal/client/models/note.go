package models

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/docmind/internal/timex"
)

// Note is a user note, optionally attached to a document.
type Note struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	IsPinned   bool       `json:"is_pinned"`
	DocumentID *string    `json:"document_id,omitempty"`
	CreatedAt  timex.Time `json:"created_at"`
	UpdatedAt  timex.Time `json:"updated_at"`
}

// NoteCreate is the body of POST /notes/.
type NoteCreate struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsPinned   bool     `json:"is_pinned"`
	DocumentID *string  `json:"document_id,omitempty"`
}

// NoteUpdate is the body of PUT /notes/{id}. Nil fields are left unchanged.
type NoteUpdate struct {
	Title    *string  `json:"title,omitempty"`
	Content  *string  `json:"content,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	IsPinned *bool    `json:"is_pinned,omitempty"`
}

// NormalizeTags trims tags, drops empties and removes case-insensitive
// duplicates, keeping the first spelling and the entry order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		k := strings.ToLower(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

// AddTag appends tag unless an equal one (ignoring case) is present.
func AddTag(tags []string, tag string) []string {
	return NormalizeTags(append(slices.Clone(tags), tag))
}

// RemoveTag drops every tag equal to tag, ignoring case.
func RemoveTag(tags []string, tag string) []string {
	return slices.DeleteFunc(slices.Clone(tags), func(t string) bool {
		return strings.EqualFold(t, strings.TrimSpace(tag))
	})
}

// HasTag reports whether n carries tag, ignoring case.
func (n Note) HasTag(tag string) bool {
	return slices.ContainsFunc(n.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
}

// Matches reports whether query occurs in the title, content or any tag,
// ignoring case. An empty query matches everything.
func (n Note) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	return slices.ContainsFunc(n.Tags, func(t string) bool { return strings.Contains(strings.ToLower(t), q) })
}

// SortNotes orders pinned notes first, then by most recent update.
func SortNotes(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return b.UpdatedAt.Compare(a.UpdatedAt.Time)
	})
}
