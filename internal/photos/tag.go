package photos

import (
	"fmt"
	"strings"
)

// Tag is an immutable name/value pair attached to a photo.
// Two tags are equal when both fields match exactly, so Tag is usable
// with == and as a map key.
type Tag struct {
	name  string
	value string
}

// NewTag creates a tag from trimmed name and value.
func NewTag(name, value string) (Tag, error) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return Tag{}, fmt.Errorf("%w: tag name is empty", ErrInvalidArgument)
	}
	if value == "" {
		return Tag{}, fmt.Errorf("%w: tag value is empty", ErrInvalidArgument)
	}
	return Tag{name: name, value: value}, nil
}

// ParseTag parses free text of the form "name:value" or "name=value".
func ParseTag(text string) (Tag, error) {
	text = strings.TrimSpace(text)
	sep := strings.IndexAny(text, ":=")
	if sep < 0 || strings.ContainsAny(text[sep+1:], ":=") {
		return Tag{}, fmt.Errorf("%w: tag must be in the form name:value, got %q", ErrInvalidArgument, text)
	}
	return NewTag(text[:sep], text[sep+1:])
}

func (t Tag) Name() string  { return t.name }
func (t Tag) Value() string { return t.value }

// Matches reports whether the tag has exactly this name and value.
func (t Tag) Matches(name, value string) bool {
	return t.name == name && t.value == value
}

func (t Tag) String() string {
	return t.name + "=" + t.value
}
