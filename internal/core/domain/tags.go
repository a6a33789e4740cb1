package domain

import "strings"

// TagSuggestion is a tag offered by the remote suggestion endpoint.
type TagSuggestion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TagSet is an insertion-ordered set of tags without duplicates.
// The zero value is an empty set ready to use.
type TagSet struct {
	tags []string
}

// NewTagSet returns a set holding tags in order, skipping blanks and duplicates.
func NewTagSet(tags ...string) TagSet {
	var s TagSet
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add appends tag unless it is blank or already present.
// It returns true if the set changed.
func (s *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || s.Contains(tag) {
		return false
	}
	s.tags = append(s.tags, tag)
	return true
}

// Remove deletes tag by value. It returns true if the set changed.
func (s *TagSet) Remove(tag string) bool {
	for i, t := range s.tags {
		if t == tag {
			s.tags = append(s.tags[:i:i], s.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether tag is in the set.
func (s *TagSet) Contains(tag string) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Values returns the tags in insertion order.
func (s *TagSet) Values() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// Len returns the number of tags.
func (s *TagSet) Len() int {
	return len(s.tags)
}

// Clear empties the set.
func (s *TagSet) Clear() {
	s.tags = nil
}
